package pipeline

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// pathBaseKey holds the path prefix consumed by Map branches.
var pathBaseKey = handler.NewKey[string]("pipeline.path_base")

// Compose builds a single handler from an ordered list of stages and a terminal handler.
// The first stage runs first on the way in and last on the way out.
func Compose[C handler.Context](stages []handler.Middleware[C], terminal handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	if terminal == nil {
		panic(ErrNilTerminal)
	}

	h := terminal

	// Wrap in reverse order so the first stage runs first
	for i := len(stages) - 1; i >= 0; i-- {
		if stages[i] == nil {
			panic(fmt.Errorf("%w at position %d", ErrNilStage, i))
		}
		h = stages[i](h)
	}

	return h
}

// When runs the given stages only for requests that satisfy pred.
// After the stages, control rejoins the outer chain. When pred does not hold
// the stages are skipped entirely.
func When[C handler.Context](pred func(ctx C) bool, stages ...handler.Middleware[C]) handler.Middleware[C] {
	if pred == nil {
		panic("pipeline: When requires a predicate")
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		branch := Compose(stages, next)
		return func(ctx C) handler.Response {
			if pred(ctx) {
				return branch(ctx)
			}
			return next(ctx)
		}
	}
}

// Map dispatches requests whose path starts with prefix (on a segment boundary)
// into branch. The branch sees the remaining path and never rejoins the outer
// chain. Requests outside the prefix fall through.
func Map[C handler.Context](prefix string, branch handler.HandlerFunc[C]) handler.Middleware[C] {
	if prefix == "" || prefix[0] != '/' || (len(prefix) > 1 && strings.HasSuffix(prefix, "/")) {
		panic(fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix))
	}
	if branch == nil {
		panic(ErrNilTerminal)
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			matched, rest, ok := stripSegments(r.URL.Path, prefix)
			if !ok {
				return next(ctx)
			}

			base := PathBase(ctx)
			r2 := r.Clone(r.Context())
			r2.URL.Path = rest
			r2.URL.RawPath = ""

			// The branch sees the stripped request; outer stages get the
			// original one back, also when the branch panics.
			ctx.SetRequest(r2)
			pathBaseKey.Set(ctx, base+matched)
			resp, inner := func() (handler.Response, *http.Request) {
				defer restore(ctx, r, base)
				resp := branch(ctx)
				return resp, ctx.Request()
			}()
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, _ *http.Request) error {
				ctx.SetRequest(inner)
				pathBaseKey.Set(ctx, base+matched)
				defer restore(ctx, r, base)
				return resp(w, inner)
			}
		}
	}
}

func restore[C handler.Context](ctx C, r *http.Request, base string) {
	ctx.SetRequest(r)
	pathBaseKey.Set(ctx, base)
}

// PathBase returns the path prefix consumed by enclosing Map branches.
func PathBase(ctx handler.Context) string {
	base, _ := pathBaseKey.Get(ctx)
	return base
}

// PathStartsWith returns a predicate matching request paths that start with
// prefix on a segment boundary, ignoring case.
func PathStartsWith[C handler.Context](prefix string) func(ctx C) bool {
	return func(ctx C) bool {
		return StartsWithSegments(ctx.Request().URL.Path, prefix)
	}
}

// StartsWithSegments reports whether path begins with prefix followed by
// either the end of the path or a '/'. Comparison ignores case.
func StartsWithSegments(path, prefix string) bool {
	_, _, ok := stripSegments(path, prefix)
	return ok
}

// stripSegments splits path into the part matched by prefix and the
// remainder. The remainder always starts with '/'.
func stripSegments(path, prefix string) (matched, rest string, ok bool) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return "", path, true
	}
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return "", "", false
	}

	matched, rest = path[:len(prefix)], path[len(prefix):]
	switch {
	case rest == "":
		return matched, "/", true
	case rest[0] == '/':
		return matched, rest, true
	default:
		return "", "", false
	}
}
