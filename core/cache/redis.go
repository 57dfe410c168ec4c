package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a cache storing keys under prefix.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if client == nil {
		panic("cache: nil redis client")
	}
	return &Redis{client: client, prefix: prefix}
}

// Get implements Cache.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache: get %q: %w", key, err)
	}
	return data, nil
}

// Set implements Cache.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}
	return nil
}

// Refresh implements Cache.
func (c *Redis) Refresh(ctx context.Context, key string, ttl time.Duration) error {
	var (
		ok  bool
		err error
	)
	if ttl > 0 {
		ok, err = c.client.Expire(ctx, c.prefix+key, ttl).Result()
	} else {
		ok, err = c.client.Persist(ctx, c.prefix+key).Result()
		if err == nil && !ok {
			// Persist reports false for keys without expiry as well.
			n, existsErr := c.client.Exists(ctx, c.prefix+key).Result()
			ok, err = n > 0, existsErr
		}
	}
	if err != nil {
		return fmt.Errorf("cache: refresh %q: %w", key, err)
	}
	if !ok {
		return ErrMiss
	}
	return nil
}

// Delete implements Cache.
func (c *Redis) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}
