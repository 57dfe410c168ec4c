package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/i18n"
)

type (
	languageContextKey   struct{}
	translatorContextKey struct{}
)

// LocalizationConfig configures the request localization middleware.
type LocalizationConfig struct {
	Skip func(ctx handler.Context) bool
	// I18n provides the supported languages and translations (required).
	I18n *i18n.I18n
	// Namespace of the translator stored in the context.
	Namespace string
	// QueryKey names the query parameter carrying a culture (default: "culture").
	QueryKey string
	// CookieName names the culture cookie (default: ".webdemo.culture").
	CookieName string
}

// Localization resolves the request language from the query string, the
// culture cookie and the Accept-Language header, in that order, falling back
// to the default language.
func Localization[C handler.Context](i *i18n.I18n) handler.Middleware[C] {
	return LocalizationWithConfig[C](LocalizationConfig{I18n: i})
}

// LocalizationWithConfig is Localization with custom configuration.
func LocalizationWithConfig[C handler.Context](cfg LocalizationConfig) handler.Middleware[C] {
	if cfg.I18n == nil {
		panic("localization middleware: i18n instance is required")
	}
	if cfg.QueryKey == "" {
		cfg.QueryKey = "culture"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = ".webdemo.culture"
	}

	resolve := func(r *http.Request) string {
		if v := r.URL.Query().Get(cfg.QueryKey); v != "" {
			if lang, ok := cfg.I18n.Supported(v); ok {
				return lang
			}
		}
		if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
			if lang, ok := cfg.I18n.Supported(c.Value); ok {
				return lang
			}
		}
		if lang, ok := cfg.I18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
			return lang
		}
		return cfg.I18n.DefaultLanguage()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			lang := resolve(ctx.Request())
			ctx.SetValue(languageContextKey{}, lang)
			ctx.SetValue(translatorContextKey{}, i18n.NewTranslator(cfg.I18n, lang, cfg.Namespace))

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Content-Language", lang)
				return response(w, r)
			}
		}
	}
}

// GetLanguage returns the language resolved for the request.
func GetLanguage(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageContextKey{}).(string)
	return lang, ok
}

// GetTranslator returns the request translator.
func GetTranslator(ctx context.Context) (*i18n.Translator, bool) {
	t, ok := ctx.Value(translatorContextKey{}).(*i18n.Translator)
	return t, ok
}
