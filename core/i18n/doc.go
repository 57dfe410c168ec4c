// Package i18n provides translations loaded from YAML resource files.
//
// Translations are keyed by language, namespace and a dotted key path. Lookups
// fall back to the default language and finally return the key itself.
//
//	i, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithLanguages("en", "fr"),
//		i18n.WithResources(os.DirFS("."), "Resources"),
//	)
//	tr := i18n.NewTranslator(i, "fr", "home")
//	tr.T("welcome", i18n.M{"name": "Ann"})
//
// Supported and MatchAcceptLanguage map client preferences onto the supported
// languages using golang.org/x/text/language.
package i18n
