package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel for successful requests (default: info).
	LogLevel slog.Level

	// SlowRequestThreshold logs slower requests at warning level (default: 5s).
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http").
	Component string
}

// Logging logs the start and completion of every request.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger is Logging with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig is Logging with custom configuration. Responses with a
// 5xx status are logged at error level and 4xx at warning level.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()

			cfg.Logger.LogAttrs(ctx, cfg.LogLevel, "HTTP request started",
				logger.Component(cfg.Component),
				logger.Event("request"),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.Query(req.URL.RawQuery),
				logger.RemoteAddr(req.RemoteAddr),
			)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				sw := newStatusWriter(w)
				err := response(sw, r)
				duration := time.Since(start)

				status := sw.status
				if err != nil && !sw.written {
					// the error is rendered by an outer stage
					status = http.StatusInternalServerError
				}

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("response"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(sw.size),
					logger.Duration(duration),
					logger.Error(err),
				}

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(ctx, level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}
