package instreg

import (
	"fmt"
	"io"
	"time"

	"github.com/giantswarm/instreg/internal/core"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("instreg: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("instreg: %s must not be empty", name))
	}
}

// requireNonNil panics if v is nil with a descriptive message.
func requireNonNil(name string, v any) {
	if v == nil {
		panic(fmt.Sprintf("instreg: %s must not be nil", name))
	}
}

// Option configures a Registry during construction via New or Root.
// Each With* function returns an Option that sets a specific field.
//
// With* functions panic on invalid input (nil owners, providers or
// factories, empty paths, non-positive durations). Option values are
// typically fixed at program start, so an invalid value is a programmer
// error, and the pattern mirrors [regexp.MustCompile].
type Option func(*registryConfig)

// WithOwner sets the owner that runs Dispose for deregistered instances.
// Default: a process-wide owner loop shared by all registries.
//
// Panics if o is nil.
func WithOwner(o Owner) Option {
	requireNonNil("owner", o)
	return func(c *registryConfig) {
		c.Owner = o
	}
}

// WithProvider adds a provider consulted by this registry only, after the
// providers registered with RegisterProvider. May be given more than once;
// providers are consulted in the order given.
//
// Panics if p is nil.
func WithProvider(p Provider) Option {
	requireNonNil("provider", p)
	return func(c *registryConfig) {
		c.Providers = append(c.Providers, p)
	}
}

// WithAutoDefault sets the auto-default factory for T in this registry only.
// It takes precedence over a factory registered with RegisterAutoDefault.
//
// Panics if f is nil.
func WithAutoDefault[T any](f func() (T, error)) Option {
	if f == nil {
		panic(fmt.Sprintf("instreg: auto-default factory for %s must not be nil", TypeOf[T]()))
	}
	d, factory := TypeOf[T](), erase(f)
	return func(c *registryConfig) {
		if c.Factories == nil {
			c.Factories = make(map[core.Descriptor]core.Factory)
		}
		c.Factories[d] = factory
	}
}

// WithoutManifest makes the registry ignore factories and providers
// registered process-wide with RegisterAutoDefault and RegisterProvider.
// Only WithAutoDefault and WithProvider apply.
func WithoutManifest() Option {
	return func(c *registryConfig) {
		c.IsolateManifest = true
	}
}

// WithTraceWriter writes the initialization trace to w. It takes precedence
// over WithTraceFile. The registry never closes w.
//
// Panics if w is nil.
func WithTraceWriter(w io.Writer) Option {
	requireNonNil("trace writer", w)
	return func(c *registryConfig) {
		c.traceWriter = w
	}
}

// WithTraceFile writes the initialization trace to the file at path,
// creating parent directories as needed. The file is truncated unless
// WithTraceAppend is also given, and an exclusive lock on path+".lock" is
// held until Registry.Close. If the file cannot be opened a warning is
// logged and the registry runs without a trace.
//
// Panics if path is empty.
func WithTraceFile(path string) Option {
	requireNonEmpty("trace file path", path)
	return func(c *registryConfig) {
		c.traceFile = path
	}
}

// WithTraceAppend appends to the trace file instead of truncating it.
func WithTraceAppend() Option {
	return func(c *registryConfig) {
		c.traceAppend = true
	}
}

// WithTraceLockTimeout sets how long opening the trace file waits for its
// lock.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithTraceLockTimeout(d time.Duration) Option {
	requirePositive("trace lock timeout", d)
	return func(c *registryConfig) {
		c.traceLockTimeout = d
	}
}
