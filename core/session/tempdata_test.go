package session_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/session"
)

// nextRequest commits sess and loads the session for the following request.
func nextRequest(t *testing.T, m *session.Manager, sess *session.Session, cookieFrom *httptest.ResponseRecorder) (*session.Session, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	require.NoError(t, m.Commit(context.Background(), w, sess))
	if len(w.Result().Cookies()) == 0 {
		w = cookieFrom
	}

	loaded, err := m.Load(context.Background(), carry(w))
	require.NoError(t, err)
	return loaded, w
}

func TestTempData(t *testing.T) {
	t.Parallel()

	t.Run("value survives until read", func(t *testing.T) {
		t.Parallel()

		m := newManager(t, cache.NewMemory())
		sess, err := m.Load(context.Background(), httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		sess.TempData().Set("message", "saved")
		sess, w := nextRequest(t, m, sess, nil)

		v, ok := sess.TempData().Get("message")
		assert.True(t, ok)
		assert.Equal(t, "saved", v)

		sess, _ = nextRequest(t, m, sess, w)
		_, ok = sess.TempData().Get("message")
		assert.False(t, ok, "read values are removed at commit")
	})

	t.Run("peek and keep retain values", func(t *testing.T) {
		t.Parallel()

		m := newManager(t, cache.NewMemory())
		sess, err := m.Load(context.Background(), httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		td := sess.TempData()
		td.Set("a", "1")
		td.Set("b", "2")
		sess, w := nextRequest(t, m, sess, nil)

		td = sess.TempData()
		_, _ = td.Peek("a")
		_, _ = td.Get("b")
		td.Keep("b")
		sess, _ = nextRequest(t, m, sess, w)

		assert.Equal(t, []string{"a", "b"}, sess.TempData().Keys())
	})

	t.Run("emptied tempdata leaves no session key", func(t *testing.T) {
		t.Parallel()

		m := newManager(t, cache.NewMemory())
		sess, err := m.Load(context.Background(), httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		sess.Set("user", "x")
		sess.TempData().Set("once", "1")
		sess, w := nextRequest(t, m, sess, nil)

		_, _ = sess.TempData().Get("once")
		sess, _ = nextRequest(t, m, sess, w)

		assert.Equal(t, []string{"user"}, sess.Keys())
	})
}
