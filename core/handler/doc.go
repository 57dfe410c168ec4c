// Package handler provides types and interfaces for HTTP request processing
// with type-safe context handling and middleware support.
//
// A request is processed by a HandlerFunc that returns a deferred Response.
// Middleware wraps HandlerFuncs to form a pipeline: code before the call to
// next runs in registration order, code wrapped around the returned Response
// runs after the inner response has been written, in reverse order.
//
//	func timing[C handler.Context](next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//		return func(ctx C) handler.Response {
//			start := time.Now()
//			resp := next(ctx)
//			return func(w http.ResponseWriter, r *http.Request) error {
//				err := resp(w, r)
//				log.Println("took", time.Since(start))
//				return err
//			}
//		}
//	}
//
// # Context
//
// Context extends context.Context with access to the request, the response
// writer, route parameters and a per-request scratch dictionary. BaseContext
// is the default implementation; applications usually embed it:
//
//	type Context struct {
//		*handler.BaseContext
//	}
//
// # Items
//
// Scratch items are read and written through typed keys, so stages exchange
// values without type assertions at call sites:
//
//	var startedAt = handler.NewKey[time.Time]("started_at")
//
//	startedAt.Set(ctx, time.Now())
//	if t, ok := startedAt.Get(ctx); ok {
//		// ...
//	}
package handler
