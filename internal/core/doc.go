// Package core provides the internal implementation of the instreg registry.
// It contains the Registry (type table of InstanceLists with per-type locks),
// the default-construction protocol with its lifecycle states and attempt
// diagnostics, the disposal coordinator, drain, the event dispatcher, and the
// process manifest of auto-default factories and providers.
package core
