package webapp

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
)

// ContextItemKey is set for every request passing the redirect logger.
var ContextItemKey = handler.NewKey[string]("MyContextItemName")

// redirectLogger logs the X-Redirect header of the downstream response. The
// header is reported only; the response is never redirected.
func redirectLogger(log, category *slog.Logger) handler.Middleware[*Context] {
	return func(next handler.HandlerFunc[*Context]) handler.HandlerFunc[*Context] {
		return func(ctx *Context) handler.Response {
			ContextItemKey.Set(ctx, "My context item name")

			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				err := resp(w, r)

				redirect := strings.TrimSpace(w.Header().Get(HeaderRedirect))
				if redirect == "" {
					return err
				}

				log.DebugContext(ctx, "X-Redirect found", slog.String("redirect", redirect))
				category.DebugContext(ctx, "X-Redirect found", slog.String("redirect", redirect))
				logViewRequested(ctx, log)
				logViewRequestedOptions(ctx, log, "{ key1=value1 }", 20)

				return err
			}
		}
	}
}

// pageTrace logs a debug line for the pages it wraps.
func pageTrace(log *slog.Logger, page string) handler.Middleware[*Context] {
	return func(next handler.HandlerFunc[*Context]) handler.HandlerFunc[*Context] {
		return func(ctx *Context) handler.Response {
			log.DebugContext(ctx, page+" page", logger.Path(ctx.Request().URL.Path))
			return next(ctx)
		}
	}
}
