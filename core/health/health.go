package health

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/response"
)

// ErrProbeMismatch is returned when the cache returns a different probe value.
var ErrProbeMismatch = errors.New("health: cache probe mismatch")

const probeKey = "health:probe"

// Check is a named dependency check.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Live reports that the process serves requests.
func Live[C handler.Context](C) handler.Response {
	return response.String("Healthy")
}

// Ready runs checks in order and answers "Ready", or 503 with the name of
// the first failing check.
func Ready[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					slog.String("check", c.Name),
					logger.Error(err),
				)
				return response.StringWithStatus("Unhealthy: "+c.Name, http.StatusServiceUnavailable)
			}
		}
		return response.String("Ready")
	}
}

// CacheRoundTrip writes and reads back a short-lived probe value.
func CacheRoundTrip(c cache.Cache) func(context.Context) error {
	return func(ctx context.Context) error {
		want := []byte(time.Now().UTC().Format(time.RFC3339Nano))
		if err := c.Set(ctx, probeKey, want, 10*time.Second); err != nil {
			return err
		}
		got, err := c.Get(ctx, probeKey)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, want) {
			return ErrProbeMismatch
		}
		return nil
	}
}
