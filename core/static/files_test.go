package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/pipeline"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/core/static"
)

type ctx = *handler.BaseContext

func next(ctx) handler.Response {
	return response.String("next")
}

func serveStage(t *testing.T, stage handler.Middleware[ctx], method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h := pipeline.Compose([]handler.Middleware[ctx]{stage}, next)
	pipeline.New(h).ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestFiles(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{
		"css/site.css":   {Data: []byte("body{}")},
		"index.html":     {Data: []byte("<html></html>")},
		"images/dir/a.x": {Data: []byte("x")},
	}
	stage := static.Files[ctx](assets)

	t.Run("serves existing file with content type", func(t *testing.T) {
		t.Parallel()

		w := serveStage(t, stage, http.MethodGet, "/css/site.css")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body{}", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("head request", func(t *testing.T) {
		t.Parallel()

		w := serveStage(t, stage, http.MethodHead, "/css/site.css")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("missing file falls through", func(t *testing.T) {
		t.Parallel()

		w := serveStage(t, stage, http.MethodGet, "/css/missing.css")
		assert.Equal(t, "next", w.Body.String())
	})

	t.Run("directories fall through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "next", serveStage(t, stage, http.MethodGet, "/").Body.String())
		assert.Equal(t, "next", serveStage(t, stage, http.MethodGet, "/images/dir").Body.String())
	})

	t.Run("post falls through", func(t *testing.T) {
		t.Parallel()

		w := serveStage(t, stage, http.MethodPost, "/css/site.css")
		assert.Equal(t, "next", w.Body.String())
	})

	t.Run("traversal stays inside root", func(t *testing.T) {
		t.Parallel()

		w := serveStage(t, stage, http.MethodGet, "/../css/site.css")
		assert.Equal(t, "body{}", w.Body.String())
	})

	t.Run("range request", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/css/site.css", nil)
		req.Header.Set("Range", "bytes=0-3")
		pipeline.New(pipeline.Compose([]handler.Middleware[ctx]{stage}, next)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "body", w.Body.String())
	})
}

func TestFilesWithRequestPath(t *testing.T) {
	t.Parallel()

	images := fstest.MapFS{"banner.svg": {Data: []byte("<svg/>")}}
	stage := static.Files[ctx](images, static.WithRequestPath("/StaticFiles"))

	tests := []struct {
		target string
		body   string
	}{
		{target: "/StaticFiles/banner.svg", body: "<svg/>"},
		{target: "/staticfiles/banner.svg", body: "<svg/>"},
		{target: "/banner.svg", body: "next"},
		{target: "/StaticFilesX/banner.svg", body: "next"},
		{target: "/StaticFiles", body: "next"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			w := serveStage(t, stage, http.MethodGet, tt.target)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestFS(t *testing.T) {
	t.Parallel()

	h := static.FS[ctx](fstest.MapFS{
		"assets/app.js":     {Data: []byte("js")},
		"assets/sub/x.txt":  {Data: []byte("x")},
		"assets/index.html": {Data: []byte("index")},
	}, static.WithSubFS("assets"), static.WithStripPrefix("/static"))

	w := httptest.NewRecorder()
	pipeline.New(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, "js", w.Body.String())

	w = httptest.NewRecorder()
	pipeline.New(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/sub/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "directory listing must be disabled")

	assert.Panics(t, func() { static.FS[ctx](fstest.MapFS{}, static.WithSubFS("../x")) })
}

func TestDirAndFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello"), 0o644))

	w := httptest.NewRecorder()
	pipeline.New(static.Dir[ctx](root)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello.txt", nil))
	assert.Equal(t, "hello", w.Body.String())

	w = httptest.NewRecorder()
	pipeline.New(static.File[ctx](filepath.Join(root, "hello.txt"))).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, "hello", w.Body.String())

	assert.Panics(t, func() { static.Dir[ctx](filepath.Join(root, "missing")) })
	assert.Panics(t, func() { static.File[ctx](root) })
}
