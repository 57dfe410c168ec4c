package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type format uint8

const (
	formatAuto format = iota
	formatText
	formatJSON
)

// ContextExtractor derives a log attribute from a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level      slog.Level
	format     format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	addSource  bool
}

// Option configures New.
type Option func(*config)

// New creates a slog logger. Without an explicit formatter the output format
// follows the destination: text for terminals, JSON otherwise.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}

	var h slog.Handler
	switch resolveFormat(cfg.format, cfg.output) {
	case formatText:
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}

	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput sets the destination.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithJSONFormatter forces JSON output.
func WithJSONFormatter() Option {
	return func(c *config) { c.format = formatJSON }
}

// WithTextFormatter forces text output.
func WithTextFormatter() Option {
	return func(c *config) { c.format = formatText }
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithSource adds the source position to records.
func WithSource() Option {
	return func(c *config) { c.addSource = true }
}

// WithContextExtractors adds attributes derived from the context passed to
// the *Context logging methods.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithContextValue logs the context value stored under key as name.
func WithContextValue(name string, key any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	})
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.level = slog.LevelDebug
		c.format = formatText
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		c.format = formatJSON
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// ParseLevel parses debug, info, warn or error, ignoring case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: invalid level %q: %w", s, err)
	}
	return level, nil
}

// ParseFormat converts "json", "text" or "auto" into an Option.
func ParseFormat(s string) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return func(*config) {}, nil
	case "json":
		return WithJSONFormatter(), nil
	case "text":
		return WithTextFormatter(), nil
	default:
		return nil, fmt.Errorf("logger: invalid format %q", s)
	}
}

func resolveFormat(f format, w io.Writer) format {
	if f != formatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		fd := file.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return formatText
		}
	}
	return formatJSON
}

// contextHandler adds extracted context attributes to each record.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
