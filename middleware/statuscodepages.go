package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// StatusCodePagesConfig configures the status code pages middleware.
type StatusCodePagesConfig struct {
	Skip func(ctx handler.Context) bool
	// Format receives the status code (default: "Status code page, status code: %d").
	Format string
	// ContentType defaults to "text/plain; charset=utf-8".
	ContentType string
}

// StatusCodePages gives a plain-text body to responses with a 4xx or 5xx
// status and no body.
func StatusCodePages[C handler.Context]() handler.Middleware[C] {
	return StatusCodePagesWithConfig[C](StatusCodePagesConfig{})
}

// StatusCodePagesWithConfig is StatusCodePages with custom configuration.
func StatusCodePagesWithConfig[C handler.Context](cfg StatusCodePagesConfig) handler.Middleware[C] {
	if cfg.Format == "" {
		cfg.Format = "Status code page, status code: %d"
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "text/plain; charset=utf-8"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				sw := &statusCodeWriter{ResponseWriter: w}
				if err := response(sw, r); err != nil {
					// a held back status was never sent, so outer stages may still render
					return err
				}
				if sw.pending == 0 {
					return nil
				}

				h := w.Header()
				h.Del("Content-Length")
				h.Set("Content-Type", cfg.ContentType)
				w.WriteHeader(sw.pending)
				if r.Method == http.MethodHead {
					return nil
				}
				_, err := fmt.Fprintf(w, cfg.Format, sw.pending)
				return err
			}
		}
	}
}

// statusCodeWriter holds back error statuses until body bytes arrive.
type statusCodeWriter struct {
	http.ResponseWriter
	pending     int
	wroteHeader bool
}

func (w *statusCodeWriter) WriteHeader(code int) {
	if w.wroteHeader || w.pending != 0 {
		return
	}
	if code >= 400 && code < 600 {
		w.pending = code
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusCodeWriter) Write(b []byte) (int, error) {
	if len(b) == 0 && !w.wroteHeader {
		return 0, nil
	}
	w.flushHeader()
	return w.ResponseWriter.Write(b)
}

func (w *statusCodeWriter) flushHeader() {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if w.pending != 0 {
		w.ResponseWriter.WriteHeader(w.pending)
		w.pending = 0
	}
}

func (w *statusCodeWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *statusCodeWriter) Flush() {
	w.flushHeader()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusCodeWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}
