package webapp

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/i18n"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/mvc"
	"github.com/dmitrymomot/webdemo/core/response"
	"github.com/dmitrymomot/webdemo/middleware"
)

const (
	// HeaderRedirect is inspected after the response by the redirect logger.
	HeaderRedirect = "X-Redirect"

	visitsKey = "visits"
	flashKey  = "flash"
)

// HomeController serves the Home pages.
type HomeController struct {
	views  views
	logger *slog.Logger
}

func newHomeController(v views, log *slog.Logger) *HomeController {
	return &HomeController{views: v, logger: log}
}

// Actions implements mvc.Controller.
func (h *HomeController) Actions() mvc.Actions[*Context] {
	return mvc.Actions[*Context]{
		"Index":   h.Index,
		"About":   h.About,
		"Contact": h.Contact,
		"Error":   h.Error,
	}
}

// Index counts visits in the session and shows the per-request data service.
func (h *HomeController) Index(ctx *Context) handler.Response {
	svc, err := middleware.Resolve[*DataService](ctx)
	if err != nil {
		return response.Error(err)
	}

	data := h.page(ctx, "index")
	data.Message = ctx.T("index.message", i18n.M{"name": svc.Name(), "id": svc.ID()})

	if s := ctx.Session(); s != nil {
		visits, _ := s.GetInt(visitsKey)
		visits++
		s.SetInt(visitsKey, visits)
		data.Visits = ctx.T("index.visits", i18n.M{"count": strconv.Itoa(visits)})

		if flash, ok := s.TempData().Get(flashKey); ok {
			data.Flash = flash
		}
	}

	return h.views.render("index", data)
}

// About renders the about page. It is also the terminal of the /Home/About branch.
func (h *HomeController) About(ctx *Context) handler.Response {
	data := h.page(ctx, "about")
	data.Message = ctx.T("about.message")
	return h.views.render("about", data)
}

// Contact renders the contact page, leaves a flash message for the next
// request and sets the X-Redirect header.
func (h *HomeController) Contact(ctx *Context) handler.Response {
	if s := ctx.Session(); s != nil {
		s.TempData().Set(flashKey, ctx.T("contact.flash"))
	}

	data := h.page(ctx, "contact")
	data.Message = ctx.T("contact.message")
	page := h.views.render("contact", data)

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(HeaderRedirect, "/Home/About")
		return page(w, r)
	}
}

// Error renders the error page. During re-execution it shows the path of
// the failed request.
func (h *HomeController) Error(ctx *Context) handler.Response {
	data := h.page(ctx, "error")
	data.Message = ctx.T("error.message")

	if exc, ok := middleware.ExceptionKey.Get(ctx); ok {
		data.ErrorPath = exc.Path
		h.logger.DebugContext(ctx, "rendering error page",
			logger.Path(exc.Path),
			logger.Error(exc.Err),
		)
	}

	return h.views.render("error", data)
}

func (h *HomeController) page(ctx *Context, name string) viewData {
	requestID, _ := middleware.GetRequestID(ctx)
	return viewData{
		Title:     ctx.T(name + ".title"),
		Culture:   ctx.Language(),
		RequestID: requestID,
		Nav: navLabels{
			Home:    ctx.T("nav.home"),
			About:   ctx.T("nav.about"),
			Contact: ctx.T("nav.contact"),
		},
	}
}
