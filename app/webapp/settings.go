package webapp

import (
	"io/fs"

	"github.com/dmitrymomot/webdemo/core/settings"
)

// DataSettings is bound from the DataSettings section of the settings files.
type DataSettings struct {
	Name string
}

func loadSettings(content fs.FS, cfg Config) (*settings.Source, error) {
	files := []settings.File{settings.Required("appsettings.json")}
	if env := cfg.EnvironmentName(); env != "" {
		files = append(files, settings.Optional("appsettings."+env+".json"))
	}
	files = append(files, settings.Required("configSettings.json"))
	return settings.Load(content, files...)
}
