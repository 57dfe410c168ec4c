package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts in the framework.
// Use BaseContext for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	// SetRequest replaces the request seen by downstream stages.
	SetRequest(r *http.Request)
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetParam(key, value string)
	SetValue(key, val any)
	// Item returns a per-request scratch value. Prefer Key[T] over raw access.
	Item(key any) (any, bool)
	SetItem(key, val any)
}

// BaseContext is the default context implementation that delegates to the request's context.
// A BaseContext lives for exactly one request and must not be shared.
type BaseContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	items  map[any]any
}

// NewBaseContext creates a new BaseContext instance.
func NewBaseContext(w http.ResponseWriter, r *http.Request) *BaseContext {
	return &BaseContext{
		w: w,
		r: r,
	}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *BaseContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *BaseContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *BaseContext) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key, or nil if no value is associated with key.
func (c *BaseContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
// The value can be retrieved using the Value method.
func (c *BaseContext) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the HTTP request associated with this context.
func (c *BaseContext) Request() *http.Request {
	return c.r
}

// SetRequest replaces the HTTP request associated with this context.
func (c *BaseContext) SetRequest(r *http.Request) {
	if r != nil {
		c.r = r
	}
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *BaseContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the URL parameter for the given key.
func (c *BaseContext) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// SetParam sets a URL parameter value.
func (c *BaseContext) SetParam(key, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[key] = value
}

// Item returns the scratch value stored under key.
func (c *BaseContext) Item(key any) (any, bool) {
	if c.items == nil {
		return nil, false
	}
	v, ok := c.items[key]
	return v, ok
}

// SetItem stores a scratch value for the lifetime of the request.
func (c *BaseContext) SetItem(key, val any) {
	if c.items == nil {
		c.items = make(map[any]any)
	}
	c.items[key] = val
}
