package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into the
// configuration struct.
var ErrParsing = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (a struct value)
	loadMu     sync.Mutex
)

// Load fills cfg from the environment. The first call also loads a .env file
// from the working directory when one exists. Results are cached per type.
func Load[T any](cfg *T) error {
	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParsing, fmt.Errorf("%s: %w", typ, err))
	}

	cache.Store(typ, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configurations.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
