package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/middleware"
)

func TestRequestIDDefaultConfiguration(t *testing.T) {
	t.Parallel()

	var captured string
	h := chain(func(c ctx) handler.Response {
		id, ok := middleware.GetRequestID(c)
		assert.True(t, ok)
		captured = id
		return response.String("ok")
	}, middleware.RequestID[ctx]())

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, captured, 36)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	h := chain(func(c ctx) handler.Response {
		return response.String("ok")
	}, middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{
		HeaderName:  "X-Trace",
		UseExisting: true,
		Generator:   func() string { return "generated" },
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace", "incoming")
	assert.Equal(t, "incoming", serve(h, req).Header().Get("X-Trace"))

	assert.Equal(t, "generated", serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Header().Get("X-Trace"))
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	h := chain(func(c ctx) handler.Response {
		_, ok := middleware.GetRequestID(c)
		assert.False(t, ok)
		return response.String("ok")
	}, middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{
		Skip: func(handler.Context) bool { return true },
	}))

	assert.Empty(t, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Header().Get("X-Request-ID"))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithTextFormatter(), logger.WithContextExtractors(middleware.RequestIDExtractor()))

	h := chain(func(c ctx) handler.Response {
		log.InfoContext(c, "inside")
		return response.String("ok")
	}, middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{Generator: func() string { return "abc" }}))

	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Contains(t, buf.String(), "request_id=abc")

	buf.Reset()
	log.InfoContext(context.Background(), "outside")
	assert.NotContains(t, buf.String(), "request_id")
}
