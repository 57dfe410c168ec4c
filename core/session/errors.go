package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrLoadSession is returned when reading a session from the store fails.
	ErrLoadSession = errors.New("failed to load session")
	// ErrSaveSession is returned when saving a session to the store fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
	// ErrInvalidData is returned when stored session data cannot be decoded.
	ErrInvalidData = errors.New("invalid session data")
)
