package webapp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/config"
	"github.com/dmitrymomot/webdemo/core/cookie"
	"github.com/dmitrymomot/webdemo/core/health"
	"github.com/dmitrymomot/webdemo/core/i18n"
	"github.com/dmitrymomot/webdemo/core/logger"
	"github.com/dmitrymomot/webdemo/core/mvc"
	"github.com/dmitrymomot/webdemo/core/pipeline"
	"github.com/dmitrymomot/webdemo/core/router"
	"github.com/dmitrymomot/webdemo/core/server"
	"github.com/dmitrymomot/webdemo/core/services"
	"github.com/dmitrymomot/webdemo/core/session"
	"github.com/dmitrymomot/webdemo/core/settings"
	"github.com/dmitrymomot/webdemo/core/static"
	"github.com/dmitrymomot/webdemo/integration/database/redis"
	"github.com/dmitrymomot/webdemo/middleware"
)

const (
	serviceName = "webdemo"

	// ResourcesPath is the directory of the translation files in the content root.
	ResourcesPath = "Resources"

	cacheKeyPrefix = "webdemo:"
	sweepInterval  = time.Minute
)

// App is the demo web application: its pipeline, services and server.
type App struct {
	config     Config
	configured bool

	content     fs.FS
	logger      *slog.Logger
	cache       cache.Cache
	redis       *goredis.Client
	controllers []namedController

	settings *settings.Source
	provider *services.Provider
	handler  http.Handler
	server   *server.Server
}

type namedController struct {
	name       string
	controller mvc.Controller[*Context]
}

// AppOption configures an App.
type AppOption func(*App) error

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configured = true
		return nil
	}
}

// WithContentFS sets the content root holding settings, resources, wwwroot
// and Files. Defaults to the APP_CONTENT_ROOT directory.
func WithContentFS(fsys fs.FS) AppOption {
	return func(app *App) error {
		if fsys == nil {
			return errors.New("content filesystem cannot be nil")
		}
		app.content = fsys
		return nil
	}
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(log *slog.Logger) AppOption {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithCache replaces the cache selected by CACHE_DRIVER.
func WithCache(c cache.Cache) AppOption {
	return func(app *App) error {
		if c == nil {
			return errors.New("cache cannot be nil")
		}
		app.cache = c
		return nil
	}
}

// WithController registers an additional controller for the conventional route.
func WithController(name string, c mvc.Controller[*Context]) AppOption {
	return func(app *App) error {
		if name == "" || c == nil {
			return errors.New("controller requires a name and an implementation")
		}
		app.controllers = append(app.controllers, namedController{name: name, controller: c})
		return nil
	}
}

// NewApp builds the application. ctx bounds startup work such as connecting
// to Redis.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configured {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	cfg := app.config

	if app.logger == nil {
		log, err := newLogger(cfg)
		if err != nil {
			return nil, err
		}
		app.logger = log
	}
	if app.content == nil {
		app.content = os.DirFS(cfg.ContentRoot)
	}

	src, err := loadSettings(app.content, cfg)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	app.settings = src

	dataSettings, err := settings.Bind[DataSettings](src, "DataSettings")
	if err != nil {
		return nil, fmt.Errorf("bind data settings: %w", err)
	}

	translations, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithLanguages("en", "fr"),
		i18n.WithResources(app.content, ResourcesPath),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			app.logger.Debug("missing translation",
				logger.Culture(lang),
				slog.String("namespace", namespace),
				slog.String("key", key),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("init localization: %w", err)
	}

	if app.cache == nil {
		if err := app.openCache(ctx); err != nil {
			return nil, err
		}
	}

	cookies, err := app.newCookies()
	if err != nil {
		app.closeRedis()
		return nil, err
	}

	sessions := session.NewFromConfig(cfg.Session, app.cache, cookies,
		session.WithLogger(app.logger.With(logger.Component("session"))),
	)

	files := FileProvider{FS: static.Composite(subFS(app.content, "wwwroot"), embeddedAssets())}

	collection := services.NewCollection()
	registerServices(collection, dataSettings, translations, app.cache, sessions, files)
	app.provider = collection.Build()

	pages, err := loadViews("index", "about", "contact", "error")
	if err != nil {
		app.closeRedis()
		return nil, err
	}

	app.handler, err = app.buildPipeline(pages)
	if err != nil {
		app.closeRedis()
		return nil, err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger.With(logger.Component("server"))))
	if err != nil {
		app.closeRedis()
		return nil, err
	}
	app.server = srv

	app.logger.Info("application configured",
		slog.String("env", cfg.EnvironmentName()),
		slog.String("data_source", dataSettings.Name),
		slog.Any("settings_files", src.Files()),
		slog.Any("languages", translations.Languages()),
	)

	return app, nil
}

// buildPipeline composes the request pipeline from the registered
// services. Order matters: stages run top to bottom and unwind in reverse.
func (app *App) buildPipeline(pages views) (http.Handler, error) {
	log := app.logger

	translations, err := services.Resolve[*i18n.I18n](app.provider)
	if err != nil {
		return nil, err
	}
	kv, err := services.Resolve[cache.Cache](app.provider)
	if err != nil {
		return nil, err
	}
	sessions, err := services.Resolve[*session.Manager](app.provider)
	if err != nil {
		return nil, err
	}
	files, err := services.Resolve[FileProvider](app.provider)
	if err != nil {
		return nil, err
	}

	home := newHomeController(pages, log.With(logger.Component("home")))

	controllers := mvc.NewRegistry[*Context]()
	controllers.RegisterController("Home", home)
	for _, c := range app.controllers {
		controllers.RegisterController(c.name, c.controller)
	}

	routes := router.New[*Context](router.WithLogger[*Context](log.With(logger.Component("router"))))
	checks := []health.Check{{Name: "cache", Fn: health.CacheRoundTrip(kv)}}
	if app.redis != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(app.redis)})
	}
	mapRoutes(routes, controllers, log.With(logger.Component("health")), checks)

	b := pipeline.NewBuilder[*Context]()
	b.Use(
		middleware.RequestID[*Context](),
		middleware.LoggingWithLogger[*Context](log),
	)

	if app.config.IsDevelopment() {
		b.Use(middleware.DeveloperException[*Context](log))
	} else {
		b.Use(middleware.ExceptionHandler[*Context]("/Home/Error", log))
	}

	b.Use(
		middleware.StatusCodePages[*Context](),
		middleware.LocalizationWithConfig[*Context](middleware.LocalizationConfig{
			I18n:      translations,
			Namespace: "home",
		}),
		static.Files[*Context](files),
		static.Files[*Context](app.content, static.WithSubFS("Files/images"), static.WithRequestPath("/StaticFiles")),
		middleware.SessionWithConfig[*Context](middleware.SessionConfig{
			Manager: sessions,
			Logger:  log.With(logger.Component("session")),
		}),
		middleware.Services[*Context](app.provider, log),
		middleware.EncodeURI[*Context](),
		redirectLogger(log, log.With(logger.Category(CustomCategory))),
	)

	b.UseWhen(pipeline.PathStartsWith[*Context]("/Home/Contact"), func(branch *pipeline.Builder[*Context]) {
		branch.Use(pageTrace(log, "Contact"))
	})

	b.Map("/Home/About", func(branch *pipeline.Builder[*Context]) {
		branch.Use(pageTrace(log, "About"))
		branch.Run(home.About)
	})

	b.Run(routes.Handler())

	return pipeline.New(b.Build(),
		pipeline.WithContextFactory(newContext),
		pipeline.WithLogger[*Context](log),
	), nil
}

// Handler returns the composed pipeline.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Settings returns the merged application settings.
func (app *App) Settings() *settings.Source {
	return app.settings
}

// Logger returns the application logger.
func (app *App) Logger() *slog.Logger {
	return app.logger
}

// Run serves the application until ctx is cancelled, then shuts down
// gracefully. The in-memory cache is swept in the background.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(app.server.Run(ctx, app.handler))

	if mem, ok := app.cache.(*cache.Memory); ok {
		g.Go(func() error {
			return mem.Run(ctx, sweepInterval)
		})
	}

	return g.Wait()
}

// Close releases the services and the Redis connection.
func (app *App) Close() error {
	var errs []error
	if app.provider != nil {
		errs = append(errs, app.provider.Close())
	}
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	return errors.Join(errs...)
}

func (app *App) openCache(ctx context.Context) error {
	switch app.config.CacheDriver {
	case CacheMemory, "":
		app.cache = cache.NewMemory()
	case CacheRedis:
		client, err := redis.Connect(ctx, app.config.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		app.redis = client
		app.cache = cache.NewRedis(client, cacheKeyPrefix)
	default:
		return fmt.Errorf("unknown cache driver %q", app.config.CacheDriver)
	}
	return nil
}

func (app *App) closeRedis() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
}

// newCookies creates the cookie manager. Development runs without
// COOKIE_SECRETS get a random secret, so sessions do not survive a restart.
func (app *App) newCookies() (*cookie.Manager, error) {
	cfg := app.config.Cookie
	if cfg.Secrets == "" && app.config.IsDevelopment() {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Secrets = secret
		app.logger.Warn("COOKIE_SECRETS is empty, using a random secret")
	}

	m, err := cookie.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init cookies: %w", err)
	}
	return m, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func newLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{logger.WithProduction(serviceName)}
	if cfg.IsDevelopment() {
		opts = []logger.Option{logger.WithDevelopment(serviceName)}
	}

	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, format)
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}

	opts = append(opts, logger.WithContextExtractors(middleware.RequestIDExtractor()))
	return logger.New(opts...), nil
}

func subFS(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("webapp: invalid content directory %q: %v", dir, err))
	}
	return sub
}
