package instreg

import "github.com/giantswarm/instreg/internal/core"

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrNilItem is returned when a nil item is passed to Store, StoreAny,
	// SetDefault or Deregister. The registry is left unchanged.
	ErrNilItem = core.ErrNilItem

	// ErrMissingDefault is returned by Default when the type has no
	// registered instance and no construction strategy produced one.
	ErrMissingDefault = core.ErrMissingDefault

	// ErrUnsupportedType is returned by a Provider to decline a type. The
	// registry then asks the next provider registered for that type.
	ErrUnsupportedType = core.ErrUnsupportedType

	// ErrTypeMismatch is returned by StoreAny when the item is not
	// assignable to the descriptor's type.
	ErrTypeMismatch = core.ErrTypeMismatch

	// ErrUnknownType is returned by the name-based accessors for a type
	// name the registry has never seen.
	ErrUnknownType = core.ErrUnknownType

	// ErrConstructorPanic is wrapped by a ConstructionError when an
	// auto-default factory or provider panics.
	ErrConstructorPanic = core.ErrConstructorPanic
)

// ConstructionError describes a failed default construction. It is logged by
// the registry, not returned; it is exported so log handlers and providers
// can inspect it with errors.As.
type ConstructionError = core.ConstructionError

// Strategy identifies the construction path of a ConstructionError.
type Strategy = core.Strategy

const (
	// StrategyAutoDefault is a factory registered with RegisterAutoDefault
	// or WithAutoDefault.
	StrategyAutoDefault = core.StrategyAutoDefault

	// StrategyProvider is a Provider registered with RegisterProvider or
	// WithProvider.
	StrategyProvider = core.StrategyProvider
)
