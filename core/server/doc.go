// Package server wraps http.Server with functional options, environment
// configuration and graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Start blocks until the context is cancelled; Run adapts it for errgroup and
// drains in-flight requests within the shutdown timeout.
package server
