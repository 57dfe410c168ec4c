package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
)

// Pipeline adapts a composed handler to http.Handler. It owns the lifecycle
// of the per-request context and is the last line of defense for errors and
// panics that escaped every stage.
type Pipeline[C handler.Context] struct {
	handler      handler.HandlerFunc[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// New creates a Pipeline serving h.
func New[C handler.Context](h handler.HandlerFunc[C], opts ...Option[C]) *Pipeline[C] {
	if h == nil {
		panic(ErrNilTerminal)
	}

	p := &Pipeline[C]{
		handler:      h,
		errorHandler: response.ErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.newContext == nil {
		var zero C
		if _, ok := any(zero).(*handler.BaseContext); !ok {
			panic(ErrNoContextFactory)
		}
		p.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(handler.NewBaseContext(w, r)).(C)
		}
	}

	return p
}

// ServeHTTP implements http.Handler.
func (p *Pipeline[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := p.newContext(ww, r)

	defer func() {
		if v := recover(); v != nil {
			p.fail(ctx, ww, handler.NewPanicError(v, debug.Stack()))
		}
	}()

	resp := p.handler(ctx)

	if err := ctx.Err(); err != nil {
		p.logger.DebugContext(ctx, "request abandoned",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("reason", err.Error()),
		)
		return
	}

	if resp == nil {
		p.fail(ctx, ww, handler.ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		p.fail(ctx, ww, err)
	}
}

func (p *Pipeline[C]) fail(ctx C, ww *responseWriter, err error) {
	r := ctx.Request()

	if ctx.Err() != nil {
		p.logger.DebugContext(ctx, "request abandoned",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		return
	}

	if ww.Written() {
		attrs := []any{
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
		}
		var pe handler.PanicError
		if errors.As(err, &pe) {
			attrs = append(attrs, slog.String("stack", string(pe.Stack())))
		}
		p.logger.ErrorContext(ctx, "error after response written", attrs...)
		return
	}

	p.errorHandler(ctx, err)
}
