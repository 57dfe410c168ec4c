package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect creates a Redis client and verifies it answers a ping. Failed pings
// are retried with an interval that doubles after every attempt until
// RetryAttempts is exhausted, ConnectTimeout elapses or ctx is done.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}

	client := redis.NewClient(opts)

	var pingErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err(), pingErr)
		case <-time.After(interval):
			interval *= 2
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, fmt.Errorf("after %d attempts: %w", attempts, pingErr))
}

// Healthcheck returns a function reporting whether the client answers a ping.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
