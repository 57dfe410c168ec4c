// Package middleware provides the pipeline stages of the web application:
// exception handling, status code pages, request localization, sessions,
// per-request service scopes, URI encoding normalization, request IDs and
// request logging.
//
// Every stage is generic over the handler.Context type and follows the same
// shape: pre-logic runs before next is called, post-logic wraps the returned
// handler.Response and runs while the response is written. Stages with
// options expose an XWithConfig constructor whose config carries an optional
// Skip func.
//
// Values stored by stages are read back with GetX helpers that accept any
// context.Context:
//
//	lang, _ := middleware.GetLanguage(ctx)
//	sess, _ := middleware.GetSession(ctx)
//	svc, err := middleware.Resolve[*DataService](ctx)
//
// A typical order puts ExceptionWithConfig outermost, StatusCodePages right
// inside it, and Session before any stage that reads session state.
package middleware
