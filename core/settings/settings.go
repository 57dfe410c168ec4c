package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/viper"
)

// File is one layer of the settings source.
type File struct {
	Name     string
	Optional bool
}

// Required names a settings file that must exist.
func Required(name string) File {
	return File{Name: name}
}

// Optional names a settings file that is skipped when missing.
func Optional(name string) File {
	return File{Name: name, Optional: true}
}

// Source is a read-only view over merged settings files. Keys are
// case-insensitive and nested keys are joined with dots.
type Source struct {
	v      *viper.Viper
	loaded []string
}

// Load reads the JSON files in order from fsys. Values in later files
// override values with the same key in earlier ones.
func Load(fsys fs.FS, files ...File) (*Source, error) {
	v := viper.New()
	v.SetConfigType("json")

	src := &Source{v: v}
	for _, f := range files {
		data, err := fs.ReadFile(fsys, path.Clean(f.Name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && f.Optional {
				continue
			}
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.Name)
			}
			return nil, fmt.Errorf("settings: read %s: %w", f.Name, err)
		}
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %s", ErrInvalidFile, f.Name), err)
		}
		src.loaded = append(src.loaded, f.Name)
	}
	return src, nil
}

// Files lists the files that were found and merged, in order.
func (s *Source) Files() []string {
	return s.loaded
}

// String returns the value at key, or "" when unset.
func (s *Source) String(key string) string {
	return s.v.GetString(key)
}

// IsSet reports whether key has a value in any layer.
func (s *Source) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// Bind decodes section into a new T. Field names match keys
// case-insensitively; use `mapstructure` tags to rename.
func Bind[T any](s *Source, section string) (T, error) {
	var out T
	sub := s.v.Sub(section)
	if sub == nil {
		return out, fmt.Errorf("%w: %s", ErrSectionNotFound, section)
	}
	if err := sub.Unmarshal(&out); err != nil {
		return out, errors.Join(fmt.Errorf("%w: %s", ErrBind, section), err)
	}
	return out, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](s *Source, section string) T {
	out, err := Bind[T](s, section)
	if err != nil {
		panic(err)
	}
	return out
}
