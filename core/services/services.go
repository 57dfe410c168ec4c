package services

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Lifetime controls how long a resolved instance lives.
type Lifetime uint8

const (
	// Singleton instances are created once per Provider.
	Singleton Lifetime = iota
	// Scoped instances are created once per Scope.
	Scoped
	// Transient instances are created on every resolution.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	case Transient:
		return "transient"
	default:
		return fmt.Sprintf("lifetime(%d)", uint8(l))
	}
}

// Resolver resolves dependencies inside a factory.
type Resolver interface {
	resolve(t reflect.Type) (any, error)
}

type descriptor struct {
	typ      reflect.Type
	lifetime Lifetime
	factory  func(Resolver) (any, error)

	mu       sync.Mutex
	instance any
	created  bool
}

// Collection gathers service registrations before Build.
type Collection struct {
	descriptors map[reflect.Type]*descriptor
	built       bool
}

// NewCollection creates an empty registration collection.
func NewCollection() *Collection {
	return &Collection{descriptors: make(map[reflect.Type]*descriptor)}
}

func add[T any](c *Collection, lifetime Lifetime, factory func(Resolver) (T, error)) {
	if c.built {
		panic(ErrCollectionBuilt)
	}
	if factory == nil {
		panic("services: nil factory")
	}
	typ := reflect.TypeFor[T]()
	c.descriptors[typ] = &descriptor{
		typ:      typ,
		lifetime: lifetime,
		factory: func(r Resolver) (any, error) {
			return factory(r)
		},
	}
}

// AddSingleton registers T with a singleton lifetime. A later registration of
// the same type replaces the earlier one.
func AddSingleton[T any](c *Collection, factory func(Resolver) (T, error)) {
	add(c, Singleton, factory)
}

// AddScoped registers T with a per-scope lifetime.
func AddScoped[T any](c *Collection, factory func(Resolver) (T, error)) {
	add(c, Scoped, factory)
}

// AddTransient registers T with a per-resolution lifetime.
func AddTransient[T any](c *Collection, factory func(Resolver) (T, error)) {
	add(c, Transient, factory)
}

// AddInstance registers an existing value as a singleton.
func AddInstance[T any](c *Collection, v T) {
	add(c, Singleton, func(Resolver) (T, error) { return v, nil })
}

// Build freezes the collection and returns the root Provider.
func (c *Collection) Build() *Provider {
	if c.built {
		panic(ErrCollectionBuilt)
	}
	c.built = true
	return &Provider{descriptors: c.descriptors}
}

// Provider is the root container. It owns singleton instances.
type Provider struct {
	descriptors map[reflect.Type]*descriptor

	mu      sync.Mutex
	closers []io.Closer
	closed  bool
}

func (p *Provider) resolve(t reflect.Type) (any, error) {
	return (&resolution{provider: p}).resolve(t)
}

// NewScope starts a scope for scoped services, typically one per request.
func (p *Provider) NewScope() *Scope {
	return &Scope{provider: p, instances: make(map[reflect.Type]any)}
}

// Close closes created singletons that implement io.Closer, newest first.
func (p *Provider) Close() error {
	p.mu.Lock()
	closers := p.closers
	p.closers = nil
	p.closed = true
	p.mu.Unlock()
	return closeAll(closers)
}

func (p *Provider) track(v any) {
	if c, ok := v.(io.Closer); ok {
		p.mu.Lock()
		p.closers = append(p.closers, c)
		p.mu.Unlock()
	}
}

func (p *Provider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Scope caches scoped instances. It is not safe for concurrent use, matching
// its use for a single request.
type Scope struct {
	provider  *Provider
	instances map[reflect.Type]any
	closers   []io.Closer
}

func (s *Scope) resolve(t reflect.Type) (any, error) {
	return (&resolution{provider: s.provider, scope: s}).resolve(t)
}

// Close closes scoped and transient instances created by this scope that
// implement io.Closer, newest first.
func (s *Scope) Close() error {
	closers := s.closers
	s.closers = nil
	clear(s.instances)
	return closeAll(closers)
}

// resolution tracks one resolution chain for cycle detection.
type resolution struct {
	provider *Provider
	scope    *Scope
	stack    []reflect.Type
}

func (r *resolution) resolve(t reflect.Type) (any, error) {
	if r.provider.isClosed() {
		return nil, ErrProviderClosed
	}

	d, ok := r.provider.descriptors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}

	if slices.Contains(r.stack, t) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCircular, chain(r.stack), t)
	}
	next := &resolution{provider: r.provider, scope: r.scope, stack: append(slices.Clip(r.stack), t)}

	switch d.lifetime {
	case Singleton:
		// singletons never see the scope that first requested them
		next.scope = nil
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.created {
			return d.instance, nil
		}
		v, err := d.factory(next)
		if err != nil {
			return nil, fmt.Errorf("services: create %s: %w", t, err)
		}
		d.instance, d.created = v, true
		r.provider.track(v)
		return v, nil

	case Scoped:
		if r.scope == nil {
			return nil, fmt.Errorf("%w: %s", ErrScopedFromRoot, t)
		}
		if v, ok := r.scope.instances[t]; ok {
			return v, nil
		}
		v, err := d.factory(next)
		if err != nil {
			return nil, fmt.Errorf("services: create %s: %w", t, err)
		}
		r.scope.instances[t] = v
		r.scope.trackCloser(v)
		return v, nil

	default:
		v, err := d.factory(next)
		if err != nil {
			return nil, fmt.Errorf("services: create %s: %w", t, err)
		}
		if r.scope != nil {
			r.scope.trackCloser(v)
		}
		return v, nil
	}
}

func (s *Scope) trackCloser(v any) {
	if c, ok := v.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
}

// Resolve returns the registered T from a Provider, a Scope or the Resolver
// passed to a factory.
func Resolve[T any](r Resolver) (T, error) {
	var zero T
	typ := reflect.TypeFor[T]()
	v, err := r.resolve(typ)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", ErrWrongType, typ, v)
	}
	return out, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r Resolver) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func chain(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " -> ")
}
