package static

// config holds options shared by the static handlers.
type config struct {
	stripPrefix string
	subPath     string
	requestPath string
}

// Option configures static file serving.
type Option func(*config)

// WithStripPrefix removes the given prefix from the URL path before serving
// files. Used by FS and Dir.
func WithStripPrefix(prefix string) Option {
	return func(c *config) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves files from a subdirectory of the filesystem.
// The path uses forward slashes regardless of OS.
func WithSubFS(path string) Option {
	return func(c *config) {
		c.subPath = path
	}
}

// WithRequestPath mounts the Files stage under a URL prefix such as
// "/StaticFiles". Requests outside the prefix fall through.
func WithRequestPath(prefix string) Option {
	return func(c *config) {
		c.requestPath = prefix
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
