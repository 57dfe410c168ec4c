package middleware

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/core/session"
)

type sessionKey struct{}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	Skip func(ctx handler.Context) bool
	// Manager loads and commits sessions (required).
	Manager *session.Manager
	Logger  *slog.Logger
}

// Session loads the request session and commits it just before the response
// headers are written, or after the response when nothing was written.
func Session[C handler.Context](m *session.Manager) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig{Manager: m})
}

// SessionWithConfig is Session with custom configuration. A failing store
// degrades to a fresh session; commit failures are logged and do not fail the
// request.
func SessionWithConfig[C handler.Context](cfg SessionConfig) handler.Middleware[C] {
	if cfg.Manager == nil {
		panic("session middleware: manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Manager.Load(ctx, ctx.Request())
			if ctxErr := ctx.Err(); ctxErr != nil {
				return response.Error(ctxErr)
			}
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to load session", logger.Error(err))
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				cw := &commitWriter{ResponseWriter: w}
				cw.commit = func() {
					if ctx.Err() != nil {
						return
					}
					if err := cfg.Manager.Commit(ctx, w, sess); err != nil {
						cfg.Logger.ErrorContext(ctx, "failed to commit session",
							logger.SessionID(sess.ID()),
							logger.Error(err),
						)
					}
				}

				err := resp(cw, r)
				cw.commitOnce()
				return err
			}
		}
	}
}

// GetSession returns the request session.
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*session.Session)
	return s, ok
}

// commitWriter runs commit once, before the first header or body write.
type commitWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *commitWriter) commitOnce() {
	if w.committed {
		return
	}
	w.committed = true
	w.commit()
}

func (w *commitWriter) WriteHeader(code int) {
	w.commitOnce()
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.commitOnce()
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *commitWriter) Flush() {
	w.commitOnce()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *commitWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.commitOnce()
	return http.NewResponseController(w.ResponseWriter).Hijack()
}
