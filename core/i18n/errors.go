package i18n

import "errors"

var (
	ErrEmptyLanguage   = errors.New("i18n: language cannot be empty")
	ErrInvalidLanguage = errors.New("i18n: invalid language tag")
	ErrEmptyNamespace  = errors.New("i18n: namespace cannot be empty")
	ErrLoadResources   = errors.New("i18n: failed to load resources")
	ErrNilI18n         = errors.New("i18n: localization service is not provided")
)
