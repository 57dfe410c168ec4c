// Package redis connects to Redis for the distributed cache behind sessions.
//
// Connect parses a redis:// or rediss:// URL, creates a go-redis client and
// pings it with retries before returning:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 10 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := cache.NewRedis(client, "webdemo:")
//
// Healthcheck returns a ping function suitable for readiness probes.
//
// Errors wrap one of ErrEmptyConnectionURL, ErrFailedToParseRedisConnString,
// ErrRedisNotReady or ErrHealthcheckFailed and can be checked with errors.Is.
package redis
