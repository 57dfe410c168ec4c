// Package config loads environment variables into typed structs. A .env file
// in the working directory is read once, on the first Load, and each struct
// type is parsed once and cached.
//
//	type Config struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Nested structs are parsed recursively, so component configs such as
// server.Config or session.Config can be embedded as fields. Reset drops the
// cache; tests that change the environment call it first.
package config
