// Package router provides an ordered route table for the pipeline.
//
// Routes are tried in registration order and the first one whose template,
// constraints and method set accept the request handles it. Nothing else is
// considered, so register specific routes before general ones:
//
//	r := router.New[*handler.BaseContext]()
//	r.Get("test/{id:int}", number)
//	r.Get("test/{id:alpha}", word)
//	r.Get("test/{*slug}", slugs)
//	r.MapControllerRoute("default", "{controller=Home}/{action=Index}/{id?}", controllers)
//
// Template segments are literals (matched ignoring case) or parameters:
//
//	{name}           any non-empty segment
//	{name:int}       decimal digits fitting 32 bits
//	{name:alpha}     ASCII letters
//	{name:bool}      true or false
//	{name:guid}      a UUID
//	{name=default}   value used when the segment is absent
//	{name?}          may be absent
//	{*name}          the rest of the path, slashes included, possibly empty
//
// Additional constraints can be registered with WithConstraint. Invalid
// templates and unknown constraints panic at registration time, as does
// registering a route after the router has dispatched its first request.
//
// Matched values are available through ctx.Param. The router can be used as
// a stage (Middleware, falling through when nothing matches) or as the
// terminal handler (Handler, answering 404 or 405).
package router
