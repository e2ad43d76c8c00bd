package instreg

import (
	"fmt"

	"github.com/giantswarm/instreg/internal/core"
)

// RegisterAutoDefault registers f as the process-wide zero-argument
// constructor for T's default. Call it from an init function. A later
// registration for the same T replaces the earlier one. Registries consult
// the factory when Default finds T's list empty.
//
// Panics if f is nil.
func RegisterAutoDefault[T any](f func() (T, error)) {
	if f == nil {
		panic(fmt.Sprintf("instreg: auto-default factory for %s must not be nil", TypeOf[T]()))
	}
	core.ProcessManifest().RegisterFactory(TypeOf[T](), erase(f))
}

// RegisterProvider registers p process-wide. Call it from an init function.
// Registries snapshot the registered providers when they are created, so a
// provider registered later is seen only by registries created later
// (including the root after ClearAll).
//
// Panics if p is nil.
func RegisterProvider(p Provider) {
	requireNonNil("provider", p)
	core.ProcessManifest().RegisterProvider(p)
}

// ProviderFunc returns a Provider for the single type T backed by f.
func ProviderFunc[T any](f func() (T, error)) Provider {
	if f == nil {
		panic(fmt.Sprintf("instreg: provider function for %s must not be nil", TypeOf[T]()))
	}
	return funcProvider{d: TypeOf[T](), f: erase(f)}
}

type funcProvider struct {
	d Descriptor
	f core.Factory
}

func (p funcProvider) Types() []Descriptor {
	return []Descriptor{p.d}
}

func (p funcProvider) Default(d Descriptor) (any, error) {
	if d != p.d {
		return nil, fmt.Errorf("%s: %w", d, ErrUnsupportedType)
	}
	return p.f()
}

// erase adapts a typed constructor to core.Factory.
func erase[T any](f func() (T, error)) core.Factory {
	return func() (any, error) {
		v, err := f()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
