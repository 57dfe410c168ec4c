package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/cookie"
)

// Manager loads sessions identified by a signed cookie and commits them
// after the request.
type Manager struct {
	store      *Store
	cookies    *cookie.Manager
	cookieName string
	newID      func() string
	logger     *slog.Logger
}

// NewManager creates a session manager.
func NewManager(store *Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil || cookies == nil {
		panic("session: manager needs a store and a cookie manager")
	}

	m := &Manager{
		store:      store,
		cookies:    cookies,
		cookieName: DefaultConfig().CookieName,
		newID:      uuid.NewString,
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a Store over c and a Manager using it.
func NewFromConfig(cfg Config, c cache.Cache, cookies *cookie.Manager, opts ...Option) *Manager {
	def := DefaultConfig()
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = def.KeyPrefix
	}

	store := NewStore(c, cfg.IdleTimeout, cfg.KeyPrefix)
	return NewManager(store, cookies, append([]Option{WithCookieName(cfg.CookieName)}, opts...)...)
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string { return m.cookieName }

// Load returns the session identified by the request cookie, or a new one
// when the cookie is absent, forged or points to an expired session.
// When the store fails, a new session is returned together with the error.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.cookies.GetSigned(r, m.cookieName)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			m.logger.DebugContext(ctx, "session cookie rejected", slog.String("error", err.Error()))
		}
		return m.create(), nil
	}

	values, err := m.store.Load(ctx, id)
	switch {
	case err == nil:
		return newSession(id, values, false), nil
	case errors.Is(err, ErrNotFound):
		return m.create(), nil
	default:
		return m.create(), err
	}
}

// Commit persists the session and issues the cookie for new sessions.
// It must run before the response headers are written.
// Modified sessions are saved, untouched sessions have their idle expiry
// refreshed, and new sessions that hold nothing are not persisted.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, s *Session) error {
	values := s.snapshot()

	if !s.IsModified() {
		if s.IsNew() {
			return nil
		}
		if err := m.store.Refresh(ctx, s.ID()); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return nil
	}

	if s.IsNew() && len(values) == 0 {
		return nil
	}

	if err := m.store.Save(ctx, s.ID(), values); err != nil {
		return err
	}
	s.modified = false

	if s.IsNew() {
		if err := m.cookies.SetSigned(w, m.cookieName, s.ID()); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
		s.isNew = false
	}
	return nil
}

// Destroy deletes the session from the store and expires its cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	m.cookies.Delete(w, m.cookieName)
	if s.IsNew() {
		return nil
	}
	return m.store.Delete(ctx, s.ID())
}

func (m *Manager) create() *Session {
	return newSession(m.newID(), nil, true)
}
