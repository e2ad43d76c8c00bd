package instreg

import (
	"time"

	"github.com/giantswarm/instreg/internal/core"
	"github.com/giantswarm/instreg/internal/owner"
)

// Descriptor identifies a registered type. Descriptors built from the same
// type are equal and usable as map keys.
type Descriptor = core.Descriptor

// TypeOf returns the descriptor for T. For an interface contract pass the
// interface type itself, e.g. TypeOf[io.Closer]().
func TypeOf[T any]() Descriptor {
	return core.DescriptorOf[T]()
}

// Provider supplies default instances for the types listed by Types. It is
// consulted when Default finds no registered instance and no auto-default
// factory. Default returns ErrUnsupportedType to decline a type, in which
// case the next provider for that type is asked.
type Provider = core.Provider

// Disposer is implemented by instances that release resources when they are
// no longer registered under any type. Dispose runs on the registry's owner,
// never on the goroutine that deregistered the instance.
type Disposer = core.Disposer

// AutoInitializer is implemented by instances that need a second
// initialization step after construction. InitializeDefault runs once the
// constructed default is registered, so it may look up its own type.
type AutoInitializer = core.AutoInitializer

// Equaler lets an instance define the equality used by Deregister,
// SetDefault and Instances.Contains. Without it, instances compare with ==.
type Equaler = core.Equaler

// Owner is the execution context that runs Dispose callbacks. Post must
// queue fn and return without running it.
type Owner = core.Owner

// Flusher is implemented by owners that can wait for posted callbacks.
type Flusher = core.Flusher

// OwnerLoop is an Owner that runs callbacks in order on one goroutine. It
// implements Flusher.
type OwnerLoop = owner.Loop

// NewOwnerLoop starts an OwnerLoop. Stop it with Close when done.
//
// Panics if flushInterval <= 0.
func NewOwnerLoop(flushInterval time.Duration) *OwnerLoop {
	requirePositive("owner flush interval", flushInterval)
	return owner.New(flushInterval, core.Logger())
}
