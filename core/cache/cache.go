package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is a distributed byte cache with per-key expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Refresh resets the expiry of an existing key, returning ErrMiss if it is gone.
	Refresh(ctx context.Context, key string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
