package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/mvc"
	"github.com/dmitrymomot/webdemo/core/pipeline"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/core/router"
)

type ctx = *handler.BaseContext

func text(format string, params ...string) handler.HandlerFunc[ctx] {
	return func(c ctx) handler.Response {
		args := make([]any, len(params))
		for i, p := range params {
			args[i] = c.Param(p)
		}
		return response.String(fmt.Sprintf(format, args...))
	}
}

func do(t *testing.T, r *router.Router[ctx], method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	pipeline.New(r.Handler()).ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func newTestRouter() *router.Router[ctx] {
	home := mvc.NewRegistry[ctx]()
	home.Register("Home", mvc.Actions[ctx]{
		"Index":   text("home index id=%s", "id"),
		"Contact": text("contact"),
	})

	r := router.New[ctx]()
	r.Get("test/{id:int}", text("Hi, number: %s", "id"))
	r.Get("test/{id:alpha}", text("Hi, string: %s", "id"))
	r.Get("test/{*slug}", func(ctx) handler.Response { return response.String("Slugs!") })
	r.MapControllerRoute("default", "{controller=Home}/{action=Index}/{id?}", home)
	return r
}

func TestTestRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "integer id", target: "/test/42", body: "Hi, number: 42"},
		{name: "alphabetic id", target: "/test/abc", body: "Hi, string: abc"},
		{name: "literal ignores case", target: "/TEST/abc", body: "Hi, string: abc"},
		{name: "multi segment goes to catch-all", target: "/test/a/b/c", body: "Slugs!"},
		{name: "mixed id goes to catch-all", target: "/test/a1", body: "Slugs!"},
		{name: "int overflow goes to catch-all", target: "/test/99999999999", body: "Slugs!"},
		{name: "signed number is not int", target: "/test/-5", body: "Slugs!"},
		{name: "empty catch-all", target: "/test", body: "Slugs!"},
		{name: "conventional defaults", target: "/", body: "home index id="},
		{name: "conventional with id", target: "/home/index/7", body: "home index id=7"},
		{name: "conventional action", target: "/Home/Contact", body: "contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(t, r, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestUnresolvedControllerIsNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/Shop/Index")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodGet, "/Home/Index/1/extra")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFirstRegisteredRouteWins(t *testing.T) {
	t.Parallel()

	r := router.New[ctx]()
	r.Get("items/{id}", text("generic"))
	r.Get("items/{id:int}", text("specific"))

	w := do(t, r, http.MethodGet, "/items/5")
	assert.Equal(t, "generic", w.Body.String())
}

func TestMethods(t *testing.T) {
	t.Parallel()

	r := router.New[ctx]()
	r.Post("items", text("created"))
	r.Delete("items/{id:guid}", text("deleted %s", "id"))
	r.Get("items", text("list"))

	assert.Equal(t, "created", do(t, r, http.MethodPost, "/items").Body.String())
	assert.Equal(t, "list", do(t, r, http.MethodGet, "/items").Body.String())

	id := uuid.NewString()
	assert.Equal(t, "deleted "+id, do(t, r, http.MethodDelete, "/items/"+id).Body.String())

	w := do(t, r, http.MethodPut, "/items")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "POST, GET", w.Header().Get("Allow"))

	w = do(t, r, http.MethodDelete, "/items/not-a-guid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateFeatures(t *testing.T) {
	t.Parallel()

	r := router.New[ctx](router.WithConstraint[ctx]("even", func(v string) bool {
		return v != "" && (v[len(v)-1]-'0')%2 == 0
	}))
	r.Get("flags/{on:bool}", text("flag %s", "on"))
	r.Get("pages/{page=1}", text("page %s", "page"))
	r.Get("even/{n:int:even}", text("even %s", "n"))
	r.Get("files/{*path}", text("file %s", "path"))

	tests := []struct {
		target string
		status int
		body   string
	}{
		{target: "/flags/TRUE", status: http.StatusOK, body: "flag TRUE"},
		{target: "/flags/yes", status: http.StatusNotFound},
		{target: "/pages", status: http.StatusOK, body: "page 1"},
		{target: "/pages/3", status: http.StatusOK, body: "page 3"},
		{target: "/even/4", status: http.StatusOK, body: "even 4"},
		{target: "/even/3", status: http.StatusNotFound},
		{target: "/files/css/site.css", status: http.StatusOK, body: "file css/site.css"},
		{target: "/files/a%2Fb", status: http.StatusOK, body: "file a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			w := do(t, r, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestInvalidTemplatesPanic(t *testing.T) {
	t.Parallel()

	templates := []string{
		"test/{id:unknown}",
		"test/{*slug}/more",
		"test/{id}/{id}",
		"test/pre{id}",
		"test/{id",
		"test//x",
		"test/{}",
		"test/{*slug?}",
	}

	for _, tmpl := range templates {
		t.Run(tmpl, func(t *testing.T) {
			t.Parallel()

			r := router.New[ctx]()
			assert.Panics(t, func() { r.Get(tmpl, text("x")) })
		})
	}

	t.Run("controller route without action", func(t *testing.T) {
		t.Parallel()

		r := router.New[ctx]()
		assert.Panics(t, func() {
			r.MapControllerRoute("bad", "{controller}/x", mvc.NewRegistry[ctx]())
		})
	})
}

func TestRegistrationAfterDispatchPanics(t *testing.T) {
	t.Parallel()

	r := router.New[ctx]()
	r.Get("a", text("a"))
	do(t, r, http.MethodGet, "/a")

	assert.Panics(t, func() { r.Get("b", text("b")) })
}

func TestMiddlewareFallsThrough(t *testing.T) {
	t.Parallel()

	r := router.New[ctx]()
	r.Get("known", text("known"))

	h := pipeline.Compose([]handler.Middleware[ctx]{r.Middleware()}, func(ctx) handler.Response {
		return response.String("next")
	})

	w := httptest.NewRecorder()
	pipeline.New(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, "next", w.Body.String())

	w = httptest.NewRecorder()
	pipeline.New(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/known", nil))
	assert.Equal(t, "known", w.Body.String())
}

func TestRoutesAndMatchedRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	routes := r.Routes()
	require.Len(t, routes, 4)
	assert.Equal(t, "test/{id:int}", routes[0].Template)
	assert.Equal(t, []string{http.MethodGet}, routes[0].Methods)
	assert.Equal(t, "default", routes[3].Name)

	var matched string
	h := pipeline.Compose([]handler.Middleware[ctx]{
		func(next handler.HandlerFunc[ctx]) handler.HandlerFunc[ctx] {
			return func(c ctx) handler.Response {
				resp := next(c)
				matched, _ = router.MatchedRoute(c)
				return resp
			}
		},
	}, r.Handler())

	pipeline.New(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test/5", nil))
	assert.Equal(t, "test/{id:int}", matched)
}

func TestConstraints(t *testing.T) {
	t.Parallel()

	assert.True(t, router.IsInt("2147483647"))
	assert.False(t, router.IsInt("2147483648"))
	assert.False(t, router.IsInt("+1"))
	assert.False(t, router.IsInt(""))
	assert.True(t, router.IsAlpha("abcXYZ"))
	assert.False(t, router.IsAlpha("ab1"))
	assert.False(t, router.IsAlpha("é"))
	assert.True(t, router.IsBool("False"))
	assert.False(t, router.IsBool("1"))
	assert.True(t, router.IsGUID(uuid.NewString()))
	assert.False(t, router.IsGUID("nope"))
}
