package instreg

import (
	"io"
	"time"

	"github.com/giantswarm/instreg/internal/core"
)

// registryConfig holds configuration for a Registry. This unexported type
// wraps core.Config via embedding, keeping internal/core types out of the
// public API signature while avoiding field-by-field duplication. The trace
// fields are resolved into core.Config.Tracer when the registry is built.
type registryConfig struct {
	core.Config

	traceWriter      io.Writer
	traceFile        string
	traceAppend      bool
	traceLockTimeout time.Duration
}

// defaultRegistryConfig returns a registryConfig populated with all default
// values. Both New, Root and test helpers use this to avoid duplicating the
// default field assignments.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		traceLockTimeout: DefaultTraceLockTimeout,
	}
}

// applyOptions returns the default configuration with opts applied in order.
func applyOptions(opts []Option) registryConfig {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Owner == nil {
		cfg.Owner = core.DefaultOwner()
	}
	return cfg
}
