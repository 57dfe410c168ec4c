package mvc

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/webdemo/core/handler"
)

// Actions maps action names to their handlers.
type Actions[C handler.Context] map[string]handler.HandlerFunc[C]

// Controller exposes a set of named actions.
type Controller[C handler.Context] interface {
	Actions() Actions[C]
}

// Registry resolves controller and action names, ignoring case.
// It satisfies router.Resolver.
type Registry[C handler.Context] struct {
	mu          sync.RWMutex
	controllers map[string]Actions[C]
}

// NewRegistry creates an empty registry.
func NewRegistry[C handler.Context]() *Registry[C] {
	return &Registry[C]{controllers: make(map[string]Actions[C])}
}

// Register adds the actions of a controller. Registering the same controller
// twice merges the actions; a duplicate action panics.
func (r *Registry[C]) Register(controller string, actions Actions[C]) {
	if controller == "" {
		panic("mvc: empty controller name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(controller)
	existing, ok := r.controllers[key]
	if !ok {
		existing = make(Actions[C], len(actions))
		r.controllers[key] = existing
	}

	for name, h := range actions {
		if h == nil {
			panic(fmt.Sprintf("mvc: nil handler for %s.%s", controller, name))
		}
		action := strings.ToLower(name)
		if _, dup := existing[action]; dup {
			panic(fmt.Sprintf("mvc: duplicate action %s.%s", controller, name))
		}
		existing[action] = h
	}
}

// RegisterController adds all actions exposed by c.
func (r *Registry[C]) RegisterController(name string, c Controller[C]) {
	r.Register(name, c.Actions())
}

// Resolve returns the handler for controller and action.
func (r *Registry[C]) Resolve(controller, action string) (handler.HandlerFunc[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions, ok := r.controllers[strings.ToLower(controller)]
	if !ok {
		return nil, false
	}
	h, ok := actions[strings.ToLower(action)]
	return h, ok
}

// Controllers lists registered controller names in lower case, sorted.
func (r *Registry[C]) Controllers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
