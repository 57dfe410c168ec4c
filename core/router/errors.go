package router

import "errors"

var (
	ErrInvalidTemplate   = errors.New("invalid route template")
	ErrUnknownConstraint = errors.New("unknown route constraint")
	ErrRouterFrozen      = errors.New("routes cannot be registered after the router started serving")
	ErrNilHandler        = errors.New("nil route handler")
)
