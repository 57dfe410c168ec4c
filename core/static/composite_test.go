package static_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/static"
)

func TestComposite(t *testing.T) {
	t.Parallel()

	disk := fstest.MapFS{
		"css/site.css":  {Data: []byte("disk css")},
		"only-disk.txt": {Data: []byte("disk")},
	}
	embedded := fstest.MapFS{
		"css/site.css":      {Data: []byte("embedded css")},
		"js/site.js":        {Data: []byte("embedded js")},
		"only-embedded.txt": {Data: []byte("embedded")},
	}
	fsys := static.Composite(disk, nil, embedded)

	t.Run("first provider wins", func(t *testing.T) {
		t.Parallel()

		data, err := fs.ReadFile(fsys, "css/site.css")
		require.NoError(t, err)
		assert.Equal(t, "disk css", string(data))
	})

	t.Run("falls back to later providers", func(t *testing.T) {
		t.Parallel()

		data, err := fs.ReadFile(fsys, "only-embedded.txt")
		require.NoError(t, err)
		assert.Equal(t, "embedded", string(data))
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := fsys.Open("nope.txt")
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		_, err = fs.Stat(fsys, "nope.txt")
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("invalid path", func(t *testing.T) {
		t.Parallel()

		_, err := fsys.Open("../secret")
		assert.True(t, errors.Is(err, fs.ErrInvalid))
	})

	t.Run("directory entries are merged", func(t *testing.T) {
		t.Parallel()

		entries, err := fs.ReadDir(fsys, ".")
		require.NoError(t, err)

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"css", "js", "only-disk.txt", "only-embedded.txt"}, names)
	})
}
