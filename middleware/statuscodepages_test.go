package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/middleware"
)

func TestStatusCodePages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		resp       handler.Response
		wantStatus int
		wantBody   string
		wantCT     string
	}{
		{
			name:       "empty 404 gets generated body",
			resp:       response.Status(http.StatusNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "Status code page, status code: 404",
			wantCT:     "text/plain; charset=utf-8",
		},
		{
			name:       "empty 503 gets generated body",
			resp:       response.Status(http.StatusServiceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "Status code page, status code: 503",
			wantCT:     "text/plain; charset=utf-8",
		},
		{
			name:       "error with body is untouched",
			resp:       response.StringWithStatus("custom missing", http.StatusNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "custom missing",
		},
		{
			name:       "success without body is untouched",
			resp:       response.NoContent(),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "head request gets no body",
			method:     http.MethodHead,
			resp:       response.Status(http.StatusNotFound),
			wantStatus: http.StatusNotFound,
			wantCT:     "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			h := chain(func(c ctx) handler.Response { return tt.resp }, middleware.StatusCodePages[ctx]())
			w := serve(h, httptest.NewRequest(method, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			if tt.wantCT != "" {
				assert.Equal(t, tt.wantCT, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestStatusCodePagesCustomFormat(t *testing.T) {
	t.Parallel()

	h := chain(func(c ctx) handler.Response { return response.Status(http.StatusForbidden) },
		middleware.StatusCodePagesWithConfig[ctx](middleware.StatusCodePagesConfig{Format: "oops %d"}))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "oops 403", w.Body.String())
}

func TestStatusCodePagesLeavesErrorsToOuterStages(t *testing.T) {
	t.Parallel()

	log, _ := newTestLogger()
	h := chain(func(c ctx) handler.Response { return response.Error(response.ErrNotFound) },
		middleware.DeveloperException[ctx](log),
		middleware.StatusCodePages[ctx](),
	)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}
