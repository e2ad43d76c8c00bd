package instreg

import "github.com/giantswarm/instreg/internal/core"

// Instances is a live, read-only view of the instances registered for T.
// It reflects later changes to the registry. Two views of the same type in
// the same registry compare equal with ==, including after Clear.
type Instances[T any] struct {
	l *core.InstanceList
}

// Type returns the descriptor of T.
func (s Instances[T]) Type() Descriptor {
	return s.l.Type()
}

// Len returns the number of registered instances.
func (s Instances[T]) Len() int {
	return s.l.Len()
}

// At returns the i-th instance in registration order. It panics if i is out
// of range.
func (s Instances[T]) At(i int) T {
	return s.l.At(i).(T)
}

// All returns a copy of the instances in registration order.
func (s Instances[T]) All() []T {
	snap := s.l.Snapshot()
	out := make([]T, len(snap))
	for i, v := range snap {
		out[i] = v.(T)
	}
	return out
}

// Last returns the current default without constructing one.
func (s Instances[T]) Last() (T, bool) {
	v, ok := s.l.Tail()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Contains reports whether item is registered.
func (s Instances[T]) Contains(item T) bool {
	return s.l.Contains(item)
}

// State returns the default-construction state of T.
func (s Instances[T]) State() InitState {
	return s.l.State()
}
