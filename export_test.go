package instreg

import "time"

// ResetForTesting resets the root singleton so that the next call to Root
// creates a fresh registry. This is exported only for use in test packages
// (package instreg_test).
func ResetForTesting() { resetForTesting() }

// ConfigSnapshot holds a copy of registryConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	Owner            Owner
	Providers        int
	Factories        []Descriptor
	IsolateManifest  bool
	HasTraceWriter   bool
	TraceFile        string
	TraceAppend      bool
	TraceLockTimeout time.Duration
}

// ApplyOptionsForTesting creates a default registryConfig, applies the given
// options, and returns a ConfigSnapshot of the result. This tests the option
// closures directly without building a registry.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := applyOptions(opts)

	snap := ConfigSnapshot{
		Owner:            cfg.Owner,
		Providers:        len(cfg.Providers),
		IsolateManifest:  cfg.IsolateManifest,
		HasTraceWriter:   cfg.traceWriter != nil,
		TraceFile:        cfg.traceFile,
		TraceAppend:      cfg.traceAppend,
		TraceLockTimeout: cfg.traceLockTimeout,
	}
	for d := range cfg.Factories {
		snap.Factories = append(snap.Factories, d)
	}
	return snap
}
