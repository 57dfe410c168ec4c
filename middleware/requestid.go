package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
)

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Skip func(ctx handler.Context) bool
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
	// HeaderName defaults to "X-Request-ID".
	HeaderName string
	// UseExisting keeps an incoming request ID instead of generating one.
	UseExisting bool
}

// RequestID assigns a UUID to each request, stores it in the context and
// echoes it in the response headers.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var requestID string
			if cfg.UseExisting {
				requestID = ctx.Request().Header.Get(cfg.HeaderName)
			}
			if requestID == "" {
				requestID = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, requestID)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, requestID)
				return response(w, r)
			}
		}
	}
}

// GetRequestID returns the request ID stored by RequestID.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}

// RequestIDExtractor adds the request ID to records logged with a request
// context. Pass it to logger.WithContextExtractors.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := GetRequestID(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
