package handler

import (
	"errors"
	"fmt"
)

// ErrNilResponse is returned when a handler produces no response.
var ErrNilResponse = errors.New("nil response")

// PanicError interface allows error handlers to detect and handle panics.
// When a panic is recovered, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// NewPanicError wraps a recovered panic value.
func NewPanicError(value any, stack []byte) PanicError {
	return &panicError{value: value, stack: stack}
}

// panicError is the private implementation of PanicError interface.
type panicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *panicError) Value() any {
	return e.value
}

// Stack returns the stack trace.
func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
