package core

import (
	"fmt"
	"sync"
)

// Factory is the zero-argument constructor registered for an auto-default
// type. It replaces reflective construction: each auto-constructible type
// registers its own closure at process start.
type Factory func() (any, error)

// Provider supplies default instances for the types it declares. Providers
// are immutable strategy objects registered at process start.
//
// Default returns ErrUnsupportedType (possibly wrapped) to decline a type;
// the protocol then tries the next provider registered for it.
type Provider interface {
	Types() []Descriptor
	Default(d Descriptor) (any, error)
}

// Manifest is the process-start registration table: auto-default factories
// keyed by descriptor and the ordered list of providers. It stands in for
// classpath discovery with explicit registration, typically from init().
//
// It is safe for concurrent use.
type Manifest struct {
	mu        sync.RWMutex
	factories map[Descriptor]Factory
	providers []Provider
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{factories: make(map[Descriptor]Factory)}
}

// process is the manifest populated by RegisterAutoDefault and
// RegisterProvider in the public package.
var process = NewManifest()

// ProcessManifest returns the process-wide manifest.
func ProcessManifest() *Manifest {
	return process
}

// RegisterFactory records f as the auto-default constructor for d. A later
// registration for the same descriptor replaces the earlier one and logs a
// warning. Panics if d is zero or f is nil.
func (m *Manifest) RegisterFactory(d Descriptor, f Factory) {
	if d.IsZero() {
		panic("instreg: auto-default descriptor must not be zero")
	}
	if f == nil {
		panic(fmt.Sprintf("instreg: auto-default factory for %s must not be nil", d))
	}
	m.mu.Lock()
	_, replaced := m.factories[d]
	m.factories[d] = f
	m.mu.Unlock()
	if replaced {
		Logger().Warn("replacing auto-default factory", "type", d.Name())
	}
}

// RegisterProvider appends p. Several providers may serve the same type;
// they are consulted in registration order. Panics if p is nil.
func (m *Manifest) RegisterProvider(p Provider) {
	if p == nil {
		panic("instreg: provider must not be nil")
	}
	m.mu.Lock()
	m.providers = append(m.providers, p)
	m.mu.Unlock()
	for _, d := range p.Types() {
		Logger().Debug("provider registered", "type", d.Name(), "provider", fmt.Sprintf("%T", p))
	}
}

// Factory returns the auto-default constructor for d.
func (m *Manifest) Factory(d Descriptor) (Factory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.factories[d]
	return f, ok
}

// Providers returns a copy of the registered providers in order.
func (m *Manifest) Providers() []Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make([]Provider, len(m.providers))
	copy(cp, m.providers)
	return cp
}

// lookupName finds a descriptor with the given name among the registered
// factories.
func (m *Manifest) lookupName(name string) (Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for d := range m.factories {
		if d.Name() == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
