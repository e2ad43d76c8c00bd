package core

import "fmt"

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an immutable error type backed by a string constant. Registry
// sentinels are declared as Error constants so callers cannot reassign them,
// and errors.Is matches them through wrapped chains by plain comparison.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

// ErrNilItem is returned when a nil item is passed to Store, StoreAny,
// SetDefault or Deregister. Registry state is left unchanged.
const ErrNilItem = Error("item must not be nil")

// ErrMissingDefault is returned by Default when the type has no registered
// instance and no construction strategy produced one.
const ErrMissingDefault = Error("no default instance")

// ErrUnsupportedType is returned by a Provider to decline producing a default
// for a type it was asked about. The protocol falls through to the next
// provider registered for the type.
const ErrUnsupportedType = Error("unsupported type")

// ErrTypeMismatch is returned when an item is not assignable to the type it
// is stored under.
const ErrTypeMismatch = Error("item is not assignable to type")

// ErrUnknownType is returned by the name-based accessors when no descriptor
// with the given name is known to the registry.
const ErrUnknownType = Error("unknown type name")

// ErrConstructorPanic wraps a panic raised by an auto-default factory or a
// provider while producing a default instance.
const ErrConstructorPanic = Error("constructor panicked")

// Strategy identifies which construction path produced (or failed to
// produce) a default instance.
type Strategy int

const (
	// StrategyAutoDefault is the zero-argument factory registered for the type.
	StrategyAutoDefault Strategy = iota

	// StrategyProvider is an initializer provider registered for the type.
	StrategyProvider
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAutoDefault:
		return "auto-default"
	case StrategyProvider:
		return "provider"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ConstructionError describes a failed construction attempt. It never escapes
// the initialization protocol as a returned error; it is logged and the
// attempt degrades to "no default available".
type ConstructionError struct {
	Type     Descriptor
	Strategy Strategy
	Err      error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct default %s via %s: %v", e.Type, e.Strategy, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}
