package static

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// Files returns a stage serving existing files from fsys. Only GET and HEAD
// requests for regular files under the request path are served; everything
// else, including directories, falls through to next.
//
// Content type, range and conditional requests are handled by
// http.ServeContent.
//
//	b.Use(static.Files[*handler.BaseContext](static.Composite(os.DirFS("wwwroot"), embedded)))
//	b.Use(static.Files[*handler.BaseContext](os.DirFS("Files/images"), static.WithRequestPath("/StaticFiles")))
func Files[C handler.Context](fsys fs.FS, opts ...Option) handler.Middleware[C] {
	cfg := newConfig(opts)
	prefix := strings.TrimSuffix(cfg.requestPath, "/")

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.Files: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		fsys = sub
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				return next(ctx)
			}

			name, ok := fileName(r.URL.Path, prefix)
			if !ok {
				return next(ctx)
			}

			info, err := fs.Stat(fsys, name)
			if err != nil || !info.Mode().IsRegular() {
				return next(ctx)
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				return serveFile(w, r, fsys, name, info)
			}
		}
	}
}

// fileName maps a URL path to a file name relative to the provider root.
func fileName(urlPath, prefix string) (string, bool) {
	if prefix != "" {
		if len(urlPath) < len(prefix) || !strings.EqualFold(urlPath[:len(prefix)], prefix) {
			return "", false
		}
		urlPath = urlPath[len(prefix):]
		if urlPath != "" && urlPath[0] != '/' {
			return "", false
		}
	}

	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

func serveFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string, info fs.FileInfo) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		content = bytes.NewReader(data)
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	return nil
}
