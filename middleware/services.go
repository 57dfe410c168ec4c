package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/services"
)

type servicesScopeKey struct{}

// Services opens a service scope per request and closes it once the
// response has been written.
func Services[C handler.Context](provider *services.Provider, log *slog.Logger) handler.Middleware[C] {
	if provider == nil {
		panic("services middleware: provider is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			scope := provider.NewScope()
			release := func() {
				if err := scope.Close(); err != nil {
					log.WarnContext(ctx, "failed to close service scope", logger.Error(err))
				}
			}

			ctx.SetValue(servicesScopeKey{}, scope)

			var resp handler.Response
			func() {
				defer func() {
					if v := recover(); v != nil {
						release()
						panic(v)
					}
				}()
				resp = next(ctx)
			}()

			if resp == nil {
				release()
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				defer release()
				return resp(w, r)
			}
		}
	}
}

// GetServices returns the request service scope.
func GetServices(ctx context.Context) (*services.Scope, bool) {
	s, ok := ctx.Value(servicesScopeKey{}).(*services.Scope)
	return s, ok
}

// Resolve resolves T from the request service scope.
func Resolve[T any](ctx context.Context) (T, error) {
	scope, ok := GetServices(ctx)
	if !ok {
		var zero T
		return zero, services.ErrScopedFromRoot
	}
	return services.Resolve[T](scope)
}
