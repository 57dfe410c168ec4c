// Package response provides constructors for handler.Response values:
// plain text, HTML, raw bytes, status-only responses, html/template views and
// error propagation.
//
//	func hello(ctx handler.Context) handler.Response {
//		return response.String("Hi, " + ctx.Param("name"))
//	}
//
// Errors returned from a response travel back up the pipeline. HTTPError
// carries a status code; ToHTTPError converts arbitrary errors, honoring any
// error that implements StatusCode() int.
package response
