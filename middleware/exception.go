package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/response"
)

// Exception describes a fault caught by the exception middleware.
type Exception struct {
	Err error
	// Path is the request path that faulted.
	Path string
	// Stack is set when the fault was a panic.
	Stack []byte
}

// ExceptionKey holds the caught Exception for the error page rendered during
// re-execution.
var ExceptionKey = handler.NewKey[Exception]("middleware.exception")

// ExceptionConfig configures the exception middleware.
type ExceptionConfig struct {
	// Development renders diagnostics instead of re-executing the error path.
	Development bool
	// ErrorPath is re-executed in production mode (default: "/Home/Error").
	ErrorPath string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DeveloperException renders diagnostic pages for faults.
func DeveloperException[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return ExceptionWithConfig[C](ExceptionConfig{Development: true, Logger: log})
}

// ExceptionHandler re-executes the pipeline at errorPath for faults.
func ExceptionHandler[C handler.Context](errorPath string, log *slog.Logger) handler.Middleware[C] {
	return ExceptionWithConfig[C](ExceptionConfig{ErrorPath: errorPath, Logger: log})
}

// ExceptionWithConfig catches panics and errors from downstream stages and
// their responses. It should be the outermost stage that renders output.
//
// Errors carrying a status below 500 are written as plain text with that
// status. Other faults are logged and rendered as a diagnostic page in
// development mode, or by re-executing the downstream pipeline at ErrorPath
// with status 500 in production mode. A fault after the response has
// started is only logged.
func ExceptionWithConfig[C handler.Context](cfg ExceptionConfig) handler.Middleware[C] {
	if cfg.ErrorPath == "" {
		cfg.ErrorPath = "/Home/Error"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		fault := func(ctx C, original *http.Request, err error) handler.Response {
			httpErr := response.ToHTTPError(err)
			if httpErr.Status < http.StatusInternalServerError {
				return response.StringWithStatus(httpErr.Error(), httpErr.Status)
			}

			exc := Exception{Err: err, Path: original.URL.Path}
			var pe handler.PanicError
			if errors.As(err, &pe) {
				exc.Stack = pe.Stack()
			}

			cfg.Logger.LogAttrs(ctx, slog.LevelError, "unhandled exception",
				logger.Component("exception"),
				logger.Method(original.Method),
				logger.Path(original.URL.Path),
				logger.Error(err),
				logger.Stack(exc.Stack),
			)

			if cfg.Development {
				return diagnostics(original, exc)
			}
			return reexecute(ctx, next, original, exc, cfg)
		}

		return func(ctx C) (resp handler.Response) {
			original := ctx.Request()

			defer func() {
				if v := recover(); v != nil {
					ctx.SetRequest(original)
					resp = fault(ctx, original, handler.NewPanicError(v, debug.Stack()))
				}
			}()

			inner := next(ctx)
			if inner == nil {
				return fault(ctx, original, handler.ErrNilResponse)
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				sw := newStatusWriter(w)
				err := safeExecute(inner, sw, r)
				if err == nil {
					return nil
				}
				if ctx.Err() != nil {
					return err
				}
				if sw.written {
					cfg.Logger.LogAttrs(ctx, slog.LevelError, "exception after response started",
						logger.Component("exception"),
						logger.Method(original.Method),
						logger.Path(original.URL.Path),
						logger.StatusCode(sw.status),
						logger.Error(err),
					)
					return nil
				}

				clearContentHeaders(w.Header())
				return fault(ctx, original, err)(w, r)
			}
		}
	}
}

func reexecute[C handler.Context](ctx C, next handler.HandlerFunc[C], original *http.Request, exc Exception, cfg ExceptionConfig) handler.Response {
	ExceptionKey.Set(ctx, exc)

	errReq := original.Clone(original.Context())
	errReq.URL.Path = cfg.ErrorPath
	errReq.URL.RawPath = ""
	errReq.RequestURI = cfg.ErrorPath

	return func(w http.ResponseWriter, _ *http.Request) error {
		ctx.SetRequest(errReq)
		defer ctx.SetRequest(original)

		fw := &forcedStatusWriter{statusWriter: newStatusWriter(w), status: http.StatusInternalServerError}

		err := func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = handler.NewPanicError(v, debug.Stack())
				}
			}()
			resp := next(ctx)
			if resp == nil {
				return handler.ErrNilResponse
			}
			return resp(fw, ctx.Request())
		}()
		if err == nil {
			if !fw.written {
				fw.WriteHeader(http.StatusInternalServerError)
			}
			return nil
		}

		cfg.Logger.LogAttrs(ctx, slog.LevelError, "error page failed",
			logger.Component("exception"),
			logger.Path(cfg.ErrorPath),
			logger.Error(err),
		)
		if fw.written {
			return nil
		}
		clearContentHeaders(w.Header())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, werr := w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
		return werr
	}
}

func safeExecute(resp handler.Response, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = handler.NewPanicError(v, debug.Stack())
		}
	}()
	return resp(w, r)
}

func clearContentHeaders(h http.Header) {
	for _, k := range []string{"Content-Type", "Content-Length", "Content-Encoding", "Etag", "Last-Modified"} {
		h.Del(k)
	}
}

// forcedStatusWriter replaces any status written by the error page.
type forcedStatusWriter struct {
	*statusWriter
	status int
}

func (w *forcedStatusWriter) WriteHeader(int) {
	w.statusWriter.WriteHeader(w.status)
}

func (w *forcedStatusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(w.status)
	}
	return w.statusWriter.Write(b)
}

func (w *forcedStatusWriter) Flush() {
	if !w.written {
		w.WriteHeader(w.status)
	}
	w.statusWriter.Flush()
}

var diagnosticsTemplate = template.Must(template.New("exception").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Internal Server Error</title></head>
<body>
<h1>An unhandled exception occurred while processing the request.</h1>
<h2>{{.Type}}: {{.Message}}</h2>
<h3>Request</h3>
<table>
<tr><th>Method</th><td>{{.Method}}</td></tr>
<tr><th>Path</th><td>{{.Path}}</td></tr>
<tr><th>Query</th><td>{{.Query}}</td></tr>
</table>
<h3>Headers</h3>
<table>
{{range .Headers}}<tr><th>{{.Name}}</th><td>{{.Value}}</td></tr>
{{end}}</table>
{{if .Stack}}<h3>Stack</h3>
<pre>{{.Stack}}</pre>{{end}}
</body>
</html>
`))

type headerLine struct {
	Name  string
	Value string
}

func diagnostics(r *http.Request, exc Exception) handler.Response {
	typeName := fmt.Sprintf("%T", exc.Err)
	var pe handler.PanicError
	if errors.As(exc.Err, &pe) {
		typeName = fmt.Sprintf("%T", pe.Value())
	}

	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	slices.Sort(names)
	headers := make([]headerLine, 0, len(names))
	for _, name := range names {
		for _, v := range r.Header.Values(name) {
			headers = append(headers, headerLine{Name: name, Value: v})
		}
	}

	data := map[string]any{
		"Type":    typeName,
		"Message": exc.Err.Error(),
		"Method":  r.Method,
		"Path":    r.URL.Path,
		"Query":   r.URL.RawQuery,
		"Headers": headers,
		"Stack":   string(exc.Stack),
	}

	var buf bytes.Buffer
	if err := diagnosticsTemplate.Execute(&buf, data); err != nil {
		return response.StringWithStatus(exc.Err.Error(), http.StatusInternalServerError)
	}
	return response.HTMLWithStatus(buf.String(), http.StatusInternalServerError)
}
