package core

import (
	"errors"
	"fmt"

	"github.com/giantswarm/instreg/internal/trace"
)

// Config holds the construction-time configuration of a Registry.
//
// Concurrency contract: all fields are immutable after NewRegistry. The
// Factories map and Providers slice are copied by NewRegistry, so callers may
// reuse them.
type Config struct {
	// Owner runs disposal callbacks. Required.
	Owner Owner

	// Tracer receives the initialization-sequence trace. Nil disables it.
	Tracer *trace.Tracer

	// Factories are auto-default constructors private to this registry.
	// They take precedence over factories in the process manifest.
	Factories map[Descriptor]Factory

	// Providers are consulted after the process manifest's providers.
	Providers []Provider

	// IsolateManifest makes the registry ignore the process manifest, so
	// only Factories and Providers above are used.
	IsolateManifest bool
}

// Validate checks all Config invariants and returns an error describing every
// violation found, joined with errors.Join.
//
// Validate is called by NewRegistry, which panics on error since invalid
// configuration is a programmer error.
func (c Config) Validate() error {
	var errs []error

	if c.Owner == nil {
		errs = append(errs, errors.New("owner must not be nil"))
	}
	for d, f := range c.Factories {
		if d.IsZero() {
			errs = append(errs, errors.New("auto-default descriptor must not be zero"))
		}
		if f == nil {
			errs = append(errs, fmt.Errorf("auto-default factory for %s must not be nil", d))
		}
	}
	for i, p := range c.Providers {
		if p == nil {
			errs = append(errs, fmt.Errorf("provider %d must not be nil", i))
		}
	}

	return errors.Join(errs...)
}

// clone returns a copy of c whose map and slice are not shared with c.
func (c Config) clone() Config {
	out := c
	if c.Factories != nil {
		out.Factories = make(map[Descriptor]Factory, len(c.Factories))
		for d, f := range c.Factories {
			out.Factories[d] = f
		}
	}
	if c.Providers != nil {
		out.Providers = append([]Provider(nil), c.Providers...)
	}
	return out
}
