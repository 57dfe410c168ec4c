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

func TestEncodeURI(t *testing.T) {
	t.Parallel()

	h := chain(func(c ctx) handler.Response {
		u := c.Request().URL
		return response.String(u.Path + "|" + u.RawPath + "|" + u.EscapedPath())
	}, middleware.EncodeURI[ctx]())

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"plain path untouched", "/Home/Index", http.StatusOK, "/Home/Index||/Home/Index"},
		{"lowercase escape is canonicalized", "/files/a%2fb", http.StatusOK, "/files/a/b|/files/a%2Fb|/files/a%2Fb"},
		{"needless escape is dropped", "/%41bc", http.StatusOK, "/Abc||/Abc"},
		{"space keeps default encoding", "/hello%20world", http.StatusOK, "/hello world||/hello%20world"},
		{"malformed query is rejected", "/?q=%zz", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(h, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestEncodeURIMalformedPath(t *testing.T) {
	t.Parallel()

	called := false
	h := chain(func(c ctx) handler.Response {
		called = true
		return response.NoContent()
	}, middleware.EncodeURI[ctx]())

	// net/http refuses such a target while parsing, so the URL is built by
	// hand the way an in-process caller or a rewriting stage could.
	req := httptest.NewRequest(http.MethodGet, "/files/a", nil)
	req.URL.Path = "/files/a%zzb"
	req.URL.RawPath = "/files/a%zzb"

	w := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}
