package handler

// Key is a typed handle for a per-request scratch item.
// Two keys are the same item only if they are the same Key value,
// so declare keys once at package level.
type Key[T any] struct {
	name *string
}

// NewKey creates a typed item key. The name is used for diagnostics only.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: &name}
}

// Name returns the diagnostic name of the key.
func (k Key[T]) Name() string {
	if k.name == nil {
		return ""
	}
	return *k.name
}

// Get returns the item stored under the key.
func (k Key[T]) Get(ctx Context) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Item(k)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Set stores the item under the key.
func (k Key[T]) Set(ctx Context, v T) {
	ctx.SetItem(k, v)
}
