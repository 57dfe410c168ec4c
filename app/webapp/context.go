package webapp

import (
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/i18n"
	"github.com/dmitrymomot/webdemo/core/session"
	"github.com/dmitrymomot/webdemo/middleware"
)

// Context is the request context of the web application.
type Context struct {
	*handler.BaseContext
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{BaseContext: handler.NewBaseContext(w, r)}
}

// Session returns the request session, or nil outside the session stage.
func (c *Context) Session() *session.Session {
	s, _ := middleware.GetSession(c)
	return s
}

// Language returns the resolved request language.
func (c *Context) Language() string {
	lang, _ := middleware.GetLanguage(c)
	return lang
}

// T translates key in the request language.
func (c *Context) T(key string, placeholders ...i18n.M) string {
	tr, ok := middleware.GetTranslator(c)
	if !ok {
		return key
	}
	return tr.T(key, placeholders...)
}
