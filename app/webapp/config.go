package webapp

import (
	"strings"

	"github.com/dmitrymomot/webdemo/core/cookie"
	"github.com/dmitrymomot/webdemo/core/server"
	"github.com/dmitrymomot/webdemo/core/session"
	"github.com/dmitrymomot/webdemo/integration/database/redis"
)

// Environment names accepted by APP_ENV.
const (
	// EnvDevelopment enables the developer exception page.
	EnvDevelopment = "development"
	// EnvProduction re-executes /Home/Error for unhandled exceptions.
	EnvProduction = "production"
)

// Cache drivers accepted by CACHE_DRIVER.
const (
	// CacheMemory keeps cache entries in process.
	CacheMemory = "memory"
	// CacheRedis stores cache entries in Redis at REDIS_URL.
	CacheRedis = "redis"
)

// Config is the process configuration read from the environment.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ContentRoot string `env:"APP_CONTENT_ROOT" envDefault:"."`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"auto"`
	CacheDriver string `env:"CACHE_DRIVER" envDefault:"memory"`

	Server  server.Config
	Session session.Config
	Cookie  cookie.Config
	Redis   redis.Config
}

// IsDevelopment reports whether the app runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// EnvironmentName returns the environment name as used in settings file
// names, e.g. "Development" for appsettings.Development.json.
func (c Config) EnvironmentName() string {
	if c.Env == "" {
		return ""
	}
	return strings.ToUpper(c.Env[:1]) + strings.ToLower(c.Env[1:])
}
