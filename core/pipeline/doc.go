// Package pipeline composes request-handling stages into a single handler
// and serves it over net/http.
//
// A stage is a handler.Middleware: pre-logic runs before calling next, and
// post-logic wraps the returned handler.Response so it runs after the inner
// response has executed. Compose nests stages so the first one added is the
// outermost:
//
//	h := pipeline.Compose([]handler.Middleware[*handler.BaseContext]{logging, session}, router.Handler())
//
// When adds stages that run only for matching requests and then rejoin the
// outer chain. Map dispatches a path prefix into an isolated branch that sees
// the remaining path; the consumed prefix is available through PathBase.
//
// Builder offers the same operations in a fluent form:
//
//	b := pipeline.NewBuilder[*handler.BaseContext]()
//	b.Use(middleware.RequestID[*handler.BaseContext]())
//	b.UseWhen(pipeline.PathStartsWith[*handler.BaseContext]("/admin"), func(b *pipeline.Builder[*handler.BaseContext]) {
//		b.Use(audit)
//	})
//	b.Map("/health", func(b *pipeline.Builder[*handler.BaseContext]) {
//		b.Run(health)
//	})
//	b.Run(router.Handler())
//
//	http.ListenAndServe(":8080", pipeline.New(b.Build()))
//
// Pipeline creates one context per request, executes the response, and
// hands returned errors, nil responses and recovered panics to the error
// handler. Once the response has started, failures are only logged.
// Requests whose context was cancelled by the client are abandoned.
package pipeline
