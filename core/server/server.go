package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server wraps http.Server with graceful shutdown. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool
}

// New creates a Server listening on addr.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address once the server is listening, otherwise the
// configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start serves handler until ctx is cancelled or serving fails. On
// cancellation it returns ctx.Err(); call Stop to drain connections.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrListen, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	s.listener = ln
	s.running = true
	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
		BaseContext:    func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "starting server", slog.String("addr", ln.Addr().String()), slog.Bool("tls", s.tlsConfig != nil))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		if !ok {
			return nil
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts the server down within the shutdown timeout.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server gracefully", slog.Duration("timeout", s.shutdown))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.running = false
	if err != nil {
		s.logger.Error("server shutdown error", slog.Any("error", err))
		return errors.Join(ErrShutdown, err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Run returns a function for errgroup that serves until ctx is cancelled and
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, handler)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.Stop()
		}
		return err
	}
}
