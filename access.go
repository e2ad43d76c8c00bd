package instreg

import "fmt"

// Store registers item as an instance of T in r (the root registry when r is
// nil) and makes it the default. Duplicates are not rejected. A list-change
// event fires after the item is appended.
//
// Returns ErrNilItem if item is nil.
func Store[T any](r *Registry, item T) error {
	return resolve(r).Store(TypeOf[T](), item)
}

// StoreAny registers item under d after checking at run time that item is
// assignable to d's type. Use it when the type is only known as a
// descriptor, e.g. in plugin loaders.
//
// Returns ErrNilItem if item is nil and ErrTypeMismatch if it is not
// assignable.
func StoreAny(r *Registry, item any, d Descriptor) error {
	if d.IsZero() {
		return fmt.Errorf("store %T: %w", item, ErrUnknownType)
	}
	return resolve(r).StoreAny(d, item)
}

// List returns a live view of the instances of T in r, creating the empty
// list if needed. It never constructs a default. Views of the same type in
// the same registry compare equal.
func List[T any](r *Registry) Instances[T] {
	return Instances[T]{l: resolve(r).List(TypeOf[T]())}
}

// Default returns the default instance of T, the last one registered. When
// none is registered it constructs one with the auto-default factory or the
// providers registered for T.
//
// Returns ErrMissingDefault, wrapped with the type name, when no instance is
// available. The cause of a failed construction is logged, not returned.
func Default[T any](r *Registry) (T, error) {
	v, err := resolve(r).Default(TypeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// NullableDefault is Default without the error: ok is false when no instance
// of T is available.
func NullableDefault[T any](r *Registry) (T, bool) {
	v, ok := resolve(r).NullableDefault(TypeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// SetDefault makes item the default instance of T, registering it if it is
// not already registered. An already registered item is moved to the end of
// the list. A default-change event fires when the default actually changes.
// Returns the resulting default.
//
// Returns ErrNilItem if item is nil.
func SetDefault[T any](r *Registry, item T) (T, error) {
	v, err := resolve(r).SetDefault(TypeOf[T](), item)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Deregister removes the first registration of item as a T. When the list
// becomes empty the next Default constructs a new instance. An item that
// implements Disposer and is no longer registered under any type is
// disposed on the registry's owner. Removing an unregistered item is a
// no-op.
//
// Returns ErrNilItem if item is nil.
func Deregister[T any](r *Registry, item T) error {
	return resolve(r).Deregister(TypeOf[T](), item)
}

// ContainsDefault reports whether an instance of T is registered, without
// constructing one. It creates T's empty list if needed.
func ContainsDefault[T any](r *Registry) bool {
	return resolve(r).ContainsDefault(TypeOf[T]())
}

// IsInitialized reports whether r has a list for T, without creating one.
func IsInitialized[T any](r *Registry) bool {
	return resolve(r).IsInitialized(TypeOf[T]())
}

// StateOf returns the default-construction state of T.
func StateOf[T any](r *Registry) InitState {
	return resolve(r).State(TypeOf[T]())
}

// Clear deregisters every instance of T, disposing eligible ones, and
// resets T so the next Default constructs again.
func Clear[T any](r *Registry) {
	resolve(r).Clear(TypeOf[T]())
}
