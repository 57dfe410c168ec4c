package pipeline

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// Option configures a Pipeline during creation.
type Option[C handler.Context] func(*Pipeline[C])

// WithErrorHandler sets the last-resort error handler.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(p *Pipeline[C]) {
		if h != nil {
			p.errorHandler = h
		}
	}
}

// WithContextFactory sets a custom per-request context factory.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(p *Pipeline[C]) {
		p.newContext = f
	}
}

// WithLogger sets a custom logger.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(p *Pipeline[C]) {
		if logger != nil {
			p.logger = logger
		}
	}
}
