package settings

import "errors"

var (
	ErrFileNotFound    = errors.New("settings: required file not found")
	ErrInvalidFile     = errors.New("settings: invalid settings file")
	ErrSectionNotFound = errors.New("settings: section not found")
	ErrBind            = errors.New("settings: failed to bind section")
)
