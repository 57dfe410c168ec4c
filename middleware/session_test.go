package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/cookie"
	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/core/session"
	"github.com/dmitrymomot/webdemo/middleware"
)

func newSessionManager(t *testing.T, c cache.Cache) *session.Manager {
	t.Helper()
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	return session.NewManager(session.NewStore(c, 20*time.Minute, "session:"), cookies)
}

func counterHandler(c ctx) handler.Response {
	s, ok := middleware.GetSession(c)
	if !ok {
		return response.Status(http.StatusInternalServerError)
	}
	n, _ := s.GetInt("visits")
	n++
	s.SetInt("visits", n)
	return response.String(strconv.Itoa(n))
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	h := chain(counterHandler, middleware.Session[ctx](newSessionManager(t, mem)))

	first := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "1", first.Body.String())
	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ".webdemo.session", cookies[0].Name)
	assert.Equal(t, 1, mem.Len())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := serve(h, req)
	assert.Equal(t, "2", second.Body.String())
	assert.Empty(t, second.Result().Cookies(), "existing sessions are not re-issued")
}

func TestSessionNotPersistedWhenUntouched(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	h := chain(func(c ctx) handler.Response {
		return response.String("hi")
	}, middleware.Session[ctx](newSessionManager(t, mem)))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "hi", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
	assert.Zero(t, mem.Len())
}

func TestSessionCommittedForStatusOnlyResponses(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	h := chain(func(c ctx) handler.Response {
		s, _ := middleware.GetSession(c)
		s.Set("seen", "yes")
		return response.Status(http.StatusNotFound)
	}, middleware.StatusCodePages[ctx](), middleware.Session[ctx](newSessionManager(t, mem)))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Status code page, status code: 404", w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, 1, mem.Len())
}

func TestSessionTempDataReadOnce(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	h := chain(func(c ctx) handler.Response {
		s, _ := middleware.GetSession(c)
		td := s.TempData()
		if c.Request().URL.Path == "/set" {
			td.Set("message", "saved")
			return response.String("set")
		}
		v, ok := td.Get("message")
		if !ok {
			return response.String("empty")
		}
		return response.String(v)
	}, middleware.Session[ctx](newSessionManager(t, mem)))

	set := serve(h, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Len(t, set.Result().Cookies(), 1)
	sessionCookie := set.Result().Cookies()[0]

	read := func() string {
		req := httptest.NewRequest(http.MethodGet, "/read", nil)
		req.AddCookie(sessionCookie)
		return serve(h, req).Body.String()
	}

	assert.Equal(t, "saved", read())
	assert.Equal(t, "empty", read())
}

type failingCache struct{ cache.Cache }

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, assert.AnError
}

func TestSessionStoreFailureDegrades(t *testing.T) {
	t.Parallel()

	log, logs := newTestLogger()
	mgr := newSessionManager(t, failingCache{Cache: cache.NewMemory()})
	h := chain(func(c ctx) handler.Response {
		s, ok := middleware.GetSession(c)
		require.True(t, ok)
		assert.True(t, s.IsNew())
		return response.String("ok")
	}, middleware.SessionWithConfig[ctx](middleware.SessionConfig{Manager: mgr, Logger: log}))

	// a valid signed cookie forces a store lookup
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, cookies.SetSigned(rec, ".webdemo.session", "some-id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	w := serve(h, req)

	assert.Equal(t, "ok", w.Body.String())
	require.NotEmpty(t, logs.Entries())
	assert.Equal(t, "failed to load session", logs.Entries()[0]["msg"])
}
