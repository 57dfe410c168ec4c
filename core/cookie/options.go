package cookie

import "net/http"

// Options configures cookie attributes.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option is a functional option for configuring cookie attributes.
type Option func(*Options)

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie max-age in seconds.
// Zero makes a session cookie; negative values delete the cookie.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithSecure restricts the cookie to HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly prevents JavaScript access to the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// applyOptions copies base and applies opts, leaving shared defaults untouched.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}
