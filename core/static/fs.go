package static

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// FS creates a terminal handler serving files from fsys (embed.FS, os.DirFS,
// a Composite, ...). Directory listing is disabled; directories are served
// only through their index.html. Range and conditional requests are handled
// by http.FileServer.
//
// Panics at startup if the sub-path is invalid or the filesystem root is not
// accessible.
func FS[C handler.Context](fsys fs.FS, opts ...Option) handler.HandlerFunc[C] {
	cfg := newConfig(opts)

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		fsys = sub
	}

	if _, err := fs.Stat(fsys, "."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.FS(fsys)})
	if cfg.stripPrefix != "" {
		fileServer = http.StripPrefix(cfg.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}

// Dir creates a terminal handler serving files from a directory on disk.
// Panics at startup if root does not exist or is not a directory.
func Dir[C handler.Context](root string, opts ...Option) handler.HandlerFunc[C] {
	root = filepath.Clean(root)
	if err := validateStartup(root, true); err != nil {
		panic("static.Dir: " + err.Error())
	}
	return FS[C](os.DirFS(root), opts...)
}

// File creates a terminal handler serving a single file from disk.
// Panics at startup if the file does not exist or is a directory.
func File[C handler.Context](filePath string) handler.HandlerFunc[C] {
	cleanPath := filepath.Clean(filePath)
	if err := validateStartup(cleanPath, false); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			http.ServeFile(w, r, cleanPath)
			return nil
		}
	}
}

// neuteredFileSystem wraps http.FileSystem to disable directory listing.
// Directories are only accessible if they contain an index.html file.
type neuteredFileSystem struct {
	fs http.FileSystem
}

// Open implements http.FileSystem.
func (nfs neuteredFileSystem) Open(path string) (http.File, error) {
	f, err := nfs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if s.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		idx, err := nfs.fs.Open(index)
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = idx.Close()
	}

	return f, nil
}

// validateStartup checks that a file or directory exists at startup.
func validateStartup(path string, mustBeDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustBeDir {
				return &fs.PathError{Op: "stat", Path: path, Err: errDirNotExist}
			}
			return &fs.PathError{Op: "stat", Path: path, Err: errFileNotExist}
		}
		return err
	}

	if mustBeDir && !info.IsDir() {
		return &fs.PathError{Op: "stat", Path: path, Err: errNotDir}
	}
	if !mustBeDir && info.IsDir() {
		return &fs.PathError{Op: "stat", Path: path, Err: errIsDir}
	}
	return nil
}
