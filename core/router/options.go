package router

import (
	"log/slog"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*Router[C])

// WithLogger sets a custom logger for the router.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(r *Router[C]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConstraint registers an additional named parameter constraint,
// usable in templates as {name:constraint}.
func WithConstraint[C handler.Context](name string, c Constraint) Option[C] {
	return func(r *Router[C]) {
		if name != "" && c != nil {
			r.constraints[name] = c
		}
	}
}
