package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: failed to listen")
	ErrShutdown             = errors.New("server: shutdown failed")
	ErrLoadTLS              = errors.New("server: failed to load TLS certificate")
)
