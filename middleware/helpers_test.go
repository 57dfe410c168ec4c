package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/pipeline"
)

type ctx = *handler.BaseContext

func serve(h handler.HandlerFunc[ctx], req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	pipeline.New(h).ServeHTTP(w, req)
	return w
}

func chain(terminal handler.HandlerFunc[ctx], stages ...handler.Middleware[ctx]) handler.HandlerFunc[ctx] {
	return pipeline.Compose(stages, terminal)
}

// testLogHandler captures log records.
type testLogHandler struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	entries *[]map[string]any
}

func newTestLogger() (*slog.Logger, *testLogHandler) {
	h := &testLogHandler{entries: &[]map[string]any{}}
	return slog.New(h), h
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := map[string]any{"level": r.Level.String(), "msg": r.Message}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	*h.entries = append(*h.entries, entry)
	h.mu.Unlock()
	return nil
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testLogHandler{attrs: append(slices.Clip(h.attrs), attrs...), entries: h.entries}
}

func (h *testLogHandler) WithGroup(string) slog.Handler { return h }

func (h *testLogHandler) Entries() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(*h.entries)
}
