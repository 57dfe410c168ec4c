package static

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
)

// composite is an fs.FS that queries its providers in order.
type composite []fs.FS

// Composite combines file providers into one. Lookups try the providers in
// the given order and the first provider that has the name wins.
// fs.ErrNotExist is reported only when no provider has the name.
func Composite(providers ...fs.FS) fs.FS {
	c := make(composite, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			c = append(c, p)
		}
	}
	return c
}

// Open implements fs.FS.
func (c composite) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	var firstErr error
	for _, p := range c {
		f, err := p.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Stat implements fs.StatFS.
func (c composite) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	for _, p := range c {
		if info, err := fs.Stat(p, name); err == nil {
			return info, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadDir implements fs.ReadDirFS. Entries of all providers are merged;
// on name clashes the earlier provider wins.
func (c composite) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	seen := make(map[string]bool)
	var (
		entries []fs.DirEntry
		found   bool
	)
	for _, p := range c {
		list, err := fs.ReadDir(p, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range list {
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			entries = append(entries, e)
		}
	}

	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}
