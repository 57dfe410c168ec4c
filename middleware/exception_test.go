package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/middleware"
)

// faultyApp simulates downstream stages that fail in different ways.
func faultyApp(c ctx) handler.Response {
	switch c.Request().URL.Path {
	case "/panic":
		panic("kaboom")
	case "/response-panic":
		return func(w http.ResponseWriter, r *http.Request) error {
			panic(errors.New("late kaboom"))
		}
	case "/fail":
		return response.Error(errors.New("database unavailable"))
	case "/missing":
		return response.Error(response.ErrNotFound)
	case "/started":
		return func(w http.ResponseWriter, r *http.Request) error {
			_, _ = w.Write([]byte("partial"))
			return errors.New("stream broke")
		}
	case "/Home/Error":
		exc, ok := middleware.ExceptionKey.Get(c)
		if !ok {
			return response.String("error page without exception")
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte("error page for " + exc.Path + " at " + r.URL.Path))
			return err
		}
	default:
		return response.String("fine")
	}
}

func TestExceptionDevelopment(t *testing.T) {
	t.Parallel()

	log, logs := newTestLogger()
	h := chain(faultyApp, middleware.DeveloperException[ctx](log))

	t.Run("panic renders diagnostics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/panic?x=1", nil)
		req.Header.Set("X-Custom", "value")
		w := serve(h, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, "panic: kaboom")
		assert.Contains(t, body, "<td>/panic</td>")
		assert.Contains(t, body, "<td>x=1</td>")
		assert.Contains(t, body, "X-Custom")
		assert.Contains(t, body, "<h3>Stack</h3>")
	})

	t.Run("returned error renders diagnostics without stack", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "database unavailable")
		assert.NotContains(t, w.Body.String(), "<h3>Stack</h3>")
	})

	t.Run("response panic is caught", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/response-panic", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "late kaboom")
	})

	t.Run("client errors keep their status", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", w.Body.String())
	})

	t.Run("healthy requests pass through", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fine", w.Body.String())
	})

	found := false
	for _, e := range logs.Entries() {
		if e["msg"] == "unhandled exception" && e["path"] == "/panic" {
			found = true
			assert.NotEmpty(t, e["stack"])
		}
	}
	assert.True(t, found)
}

func TestExceptionProduction(t *testing.T) {
	t.Parallel()

	log, _ := newTestLogger()
	h := chain(faultyApp, middleware.ExceptionHandler[ctx]("/Home/Error", log))

	for _, path := range []string{"/panic", "/fail", "/response-panic"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			t.Parallel()

			w := serve(h, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code, "status is forced to 500")
			assert.Equal(t, "error page for "+path+" at /Home/Error", w.Body.String())
			assert.NotContains(t, w.Body.String(), "kaboom")
		})
	}
}

func TestExceptionAfterResponseStarted(t *testing.T) {
	t.Parallel()

	log, logs := newTestLogger()
	h := chain(faultyApp, middleware.ExceptionHandler[ctx]("/Home/Error", log))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/started", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())

	var msgs []string
	for _, e := range logs.Entries() {
		msgs = append(msgs, e["msg"].(string))
	}
	assert.Contains(t, msgs, "exception after response started")
}

func TestExceptionErrorPageFails(t *testing.T) {
	t.Parallel()

	log, _ := newTestLogger()
	h := chain(func(c ctx) handler.Response {
		panic("always")
	}, middleware.ExceptionHandler[ctx]("/Home/Error", log))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", w.Body.String())
}

func TestExceptionProductionKeepsOriginalRequestForOuterStages(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/panic", "/fail", "/response-panic"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			t.Parallel()

			var before, after, written string
			outer := func(next handler.HandlerFunc[ctx]) handler.HandlerFunc[ctx] {
				return func(c ctx) handler.Response {
					resp := next(c)
					before = c.Request().URL.Path
					return func(w http.ResponseWriter, r *http.Request) error {
						err := resp(w, r)
						after = c.Request().URL.Path
						written = r.URL.Path
						return err
					}
				}
			}

			log, _ := newTestLogger()
			h := chain(faultyApp, outer, middleware.ExceptionHandler[ctx]("/Home/Error", log))

			w := serve(h, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, "error page for "+path+" at /Home/Error", w.Body.String())
			assert.Equal(t, path, before)
			assert.Equal(t, path, after)
			assert.Equal(t, path, written)
		})
	}
}
