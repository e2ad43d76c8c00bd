// Package instreg provides a typed, in-process instance registry for
// publishing and locating shared service objects without static wiring.
//
// Each type has an ordered list of registered instances. The last one is the
// type's default. When a default is requested for a type with no instances,
// the registry constructs one, first with an auto-default factory and then
// with the providers registered for the type.
//
// # Basic Usage
//
//	import "github.com/giantswarm/instreg"
//
//	func init() {
//	    instreg.RegisterAutoDefault(func() (*Clock, error) {
//	        return NewClock(), nil
//	    })
//	}
//
//	clock, err := instreg.Default[*Clock](nil) // nil selects the root registry
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = instreg.Store[Sensor](nil, frontDoor)
//	_ = instreg.Store[Sensor](nil, backDoor)
//	s, _ := instreg.Default[Sensor](nil) // backDoor
//	_, _ = instreg.SetDefault[Sensor](nil, frontDoor)
//
// # Registries
//
// Accessors take a *Registry; nil means the process root returned by Root.
// New creates an independent registry, for example one per test:
//
//	reg := instreg.New(instreg.WithoutManifest(),
//	    instreg.WithAutoDefault(func() (*Clock, error) { return fakeClock, nil }))
//	defer reg.Drain()
//
// ClearAll swaps the root for a fresh registry with the same configuration
// and drains the old one.
//
// # Construction
//
// Default construction runs without holding the type's lock, so a factory
// may itself request defaults, including its own type. Two goroutines racing
// on an empty list may both construct and register an instance; the newer
// registration becomes the default and the overlap is logged at Error
// level. Construction failures are logged and reported as ErrMissingDefault
// (Default) or ok == false (NullableDefault). A failed type is tried again
// on the next request.
//
// # Disposal
//
// Deregister, Clear and draining hand instances that implement Disposer to
// the registry's Owner once they are no longer registered under any type.
// Dispose never runs on the caller's goroutine. By default all registries
// share one process-wide OwnerLoop; Registry.Flush waits for it.
//
// # Events
//
// Subscribe and SubscribeName deliver list and default changes synchronously
// after each change, outside the registry's locks.
//
// # Tracing
//
// WithTraceWriter and WithTraceFile record an indented trace of default
// construction, useful to untangle initialization order.
package instreg
