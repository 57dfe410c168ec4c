// Package settings loads layered JSON application settings with viper.
//
//	src, err := settings.Load(os.DirFS(root),
//		settings.Required("appsettings.json"),
//		settings.Optional("appsettings.Development.json"),
//		settings.Required("configSettings.json"),
//	)
//	data, err := settings.Bind[DataSettings](src, "DataSettings")
//
// Later files win. Bind returns a value, so callers hold an immutable copy.
package settings
