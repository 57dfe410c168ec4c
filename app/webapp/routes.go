package webapp

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/health"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/core/router"
)

// DefaultRoute is the conventional controller route.
const DefaultRoute = "{controller=Home}/{action=Index}/{id?}"

func mapRoutes(r *router.Router[*Context], controllers router.Resolver[*Context], log *slog.Logger, checks []health.Check) {
	r.Get("test/{id:int}", func(ctx *Context) handler.Response {
		return response.String(fmt.Sprintf("Hi, number: %s", ctx.Param("id")))
	})
	r.Get("test/{id:alpha}", func(ctx *Context) handler.Response {
		return response.String(fmt.Sprintf("Hi, string: %s", ctx.Param("id")))
	})
	r.Get("test/{*slug}", func(*Context) handler.Response {
		return response.String("Slugs!")
	})

	r.Get("health/live", health.Live[*Context])
	r.Get("health/ready", health.Ready[*Context](log, checks...))

	// Requests no custom route accepts fall through to the controllers.
	r.MapControllerRoute("default", DefaultRoute, controllers)
}
