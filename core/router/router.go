package router

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
)

// Resolver maps controller and action names to an action handler.
type Resolver[C handler.Context] interface {
	Resolve(controller, action string) (handler.HandlerFunc[C], bool)
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Name     string
	Methods  []string
	Template string
}

// route is a registered route entry. Entries are immutable once the router
// starts serving.
type route[C handler.Context] struct {
	name     string
	methods  []string
	tmpl     template
	handler  handler.HandlerFunc[C]
	resolver Resolver[C]
}

func (rt *route[C]) allows(method string) bool {
	if len(rt.methods) == 0 {
		return true
	}
	if method == http.MethodHead && slices.Contains(rt.methods, http.MethodGet) {
		return true
	}
	return slices.Contains(rt.methods, method)
}

// resolve returns the handler to run for the matched values.
func (rt *route[C]) resolve(values map[string]string) (handler.HandlerFunc[C], bool) {
	if rt.resolver == nil {
		return rt.handler, true
	}
	return rt.resolver.Resolve(values["controller"], values["action"])
}

// matchedRouteKey exposes the name of the dispatched route to later stages.
var matchedRouteKey = handler.NewKey[string]("router.matched_route")

// MatchedRoute returns the template of the route that handled the request.
func MatchedRoute(ctx handler.Context) (string, bool) {
	return matchedRouteKey.Get(ctx)
}

// Router dispatches requests to the first registered route whose template,
// constraints and method set accept the request.
type Router[C handler.Context] struct {
	routes      []*route[C]
	constraints map[string]Constraint
	logger      *slog.Logger
	frozen      atomic.Bool
}

// New creates an empty router.
func New[C handler.Context](opts ...Option[C]) *Router[C] {
	r := &Router[C]{
		constraints: maps.Clone(defaultConstraints),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get registers a route for GET (and HEAD) requests.
func (r *Router[C]) Get(tmpl string, h handler.HandlerFunc[C]) {
	r.Method(tmpl, h, http.MethodGet)
}

// Post registers a route for POST requests.
func (r *Router[C]) Post(tmpl string, h handler.HandlerFunc[C]) {
	r.Method(tmpl, h, http.MethodPost)
}

// Put registers a route for PUT requests.
func (r *Router[C]) Put(tmpl string, h handler.HandlerFunc[C]) {
	r.Method(tmpl, h, http.MethodPut)
}

// Delete registers a route for DELETE requests.
func (r *Router[C]) Delete(tmpl string, h handler.HandlerFunc[C]) {
	r.Method(tmpl, h, http.MethodDelete)
}

// Handle registers a route accepting any method.
func (r *Router[C]) Handle(tmpl string, h handler.HandlerFunc[C]) {
	r.Method(tmpl, h)
}

// Method registers a route restricted to the given methods.
func (r *Router[C]) Method(tmpl string, h handler.HandlerFunc[C], methods ...string) {
	if h == nil {
		panic(fmt.Errorf("router: %w for %q", ErrNilHandler, tmpl))
	}
	r.add(&route[C]{
		name:    tmpl,
		methods: normalizeMethods(methods),
		tmpl:    r.parse(tmpl),
		handler: h,
	})
}

// MapControllerRoute registers a conventional route. The template must
// declare controller and action parameters; a match whose controller and
// action the resolver does not know is skipped.
func (r *Router[C]) MapControllerRoute(name, tmpl string, resolver Resolver[C]) {
	if resolver == nil {
		panic(fmt.Errorf("router: nil resolver for route %q", name))
	}
	t := r.parse(tmpl)
	if !t.hasParam("controller") || !t.hasParam("action") {
		panic(fmt.Errorf("router: %w %q: controller route needs {controller} and {action}", ErrInvalidTemplate, tmpl))
	}
	r.add(&route[C]{name: name, tmpl: t, resolver: resolver})
}

// Routes lists the registered routes in match order.
func (r *Router[C]) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.routes))
	for _, rt := range r.routes {
		infos = append(infos, RouteInfo{
			Name:     rt.name,
			Methods:  slices.Clone(rt.methods),
			Template: rt.tmpl.String(),
		})
	}
	return infos
}

// Middleware returns the router as a pipeline stage. Unmatched requests
// continue to next.
func (r *Router[C]) Middleware() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if h, ok := r.match(ctx); ok {
				return h(ctx)
			}
			return next(ctx)
		}
	}
}

// Handler returns the router as a terminal handler. Unmatched requests get
// an empty 404, or 405 when only the method did not match.
func (r *Router[C]) Handler() handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		if h, ok := r.match(ctx); ok {
			return h(ctx)
		}
		if allowed := r.allowedMethods(ctx); len(allowed) > 0 {
			return func(w http.ResponseWriter, req *http.Request) error {
				w.Header().Set("Allow", strings.Join(allowed, ", "))
				w.WriteHeader(http.StatusMethodNotAllowed)
				return nil
			}
		}
		return response.Status(http.StatusNotFound)
	}
}

// match finds the first route accepting the request and stores its values
// on the context.
func (r *Router[C]) match(ctx C) (handler.HandlerFunc[C], bool) {
	r.frozen.Store(true)

	req := ctx.Request()
	path := splitPath(req.URL.EscapedPath())

	for _, rt := range r.routes {
		if !rt.allows(req.Method) {
			continue
		}
		values, ok := rt.tmpl.match(path)
		if !ok {
			continue
		}
		h, ok := rt.resolve(values)
		if !ok {
			continue
		}

		for k, v := range values {
			ctx.SetParam(k, v)
		}
		matchedRouteKey.Set(ctx, rt.name)

		r.logger.DebugContext(ctx, "route matched",
			slog.String("route", rt.name),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
		return h, true
	}

	return nil, false
}

func (r *Router[C]) allowedMethods(ctx C) []string {
	path := splitPath(ctx.Request().URL.EscapedPath())

	var allowed []string
	for _, rt := range r.routes {
		if len(rt.methods) == 0 {
			continue
		}
		if _, ok := rt.tmpl.match(path); !ok {
			continue
		}
		for _, m := range rt.methods {
			if !slices.Contains(allowed, m) {
				allowed = append(allowed, m)
			}
		}
	}
	return allowed
}

func (r *Router[C]) parse(tmpl string) template {
	t, err := parseTemplate(tmpl, r.constraints)
	if err != nil {
		panic(fmt.Errorf("router: %w", err))
	}
	return t
}

func (r *Router[C]) add(rt *route[C]) {
	if r.frozen.Load() {
		panic(fmt.Errorf("router: %w: %q", ErrRouterFrozen, rt.name))
	}
	r.routes = append(r.routes, rt)
}

func normalizeMethods(methods []string) []string {
	if len(methods) == 0 {
		return nil
	}
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, strings.ToUpper(m))
	}
	return out
}
