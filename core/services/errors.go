package services

import "errors"

var (
	ErrNotRegistered   = errors.New("services: service not registered")
	ErrScopedFromRoot  = errors.New("services: scoped service resolved outside a scope")
	ErrCircular        = errors.New("services: circular dependency")
	ErrWrongType       = errors.New("services: factory returned unexpected type")
	ErrProviderClosed  = errors.New("services: provider is closed")
	ErrCollectionBuilt = errors.New("services: collection already built")
)
