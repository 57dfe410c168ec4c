package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS serves HTTPS with the given configuration.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) { s.tlsConfig = config }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.shutdown = timeout }
}

// WithReadTimeout sets http.Server.ReadTimeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.readTimeout = timeout }
}

// WithWriteTimeout sets http.Server.WriteTimeout.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.writeTimeout = timeout }
}

// WithIdleTimeout sets http.Server.IdleTimeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.idleTimeout = timeout }
}

// WithMaxHeaderBytes sets http.Server.MaxHeaderBytes.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) { s.maxHeaderBytes = n }
}
