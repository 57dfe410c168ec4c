package session

import (
	"io"
	"log/slog"
	"time"
)

// Config holds session settings loaded from the environment.
type Config struct {
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:".webdemo.session"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"20m"`
	KeyPrefix   string        `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		CookieName:  ".webdemo.session",
		IdleTimeout: 20 * time.Minute,
		KeyPrefix:   "session:",
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName sets the name of the session cookie.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithLogger sets the logger used for commit failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator replaces the session id generator. Intended for tests.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
