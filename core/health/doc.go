// Package health provides liveness and readiness handlers.
//
//	r.Get("health/live", health.Live[*webapp.Context])
//	r.Get("health/ready", health.Ready[*webapp.Context](log,
//		health.Check{Name: "cache", Fn: health.CacheRoundTrip(kv)},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
//
// Readiness runs the checks in order and answers 503 naming the first one
// that failed.
package health
