package instreg

import "github.com/giantswarm/instreg/internal/core"

// Event describes one change of a registry. For EventListChanged, Index is
// the position that changed, New the added item and Old the removed one;
// both are nil when the list itself was just created. For
// EventDefaultChanged, Old and New are the previous and new default.
type Event = core.Event

// EventKind distinguishes list changes from default changes.
type EventKind = core.EventKind

const (
	// EventListChanged is fired for adds, removals and list creation.
	EventListChanged = core.EventListChanged

	// EventDefaultChanged is fired by SetDefault when the default changes.
	EventDefaultChanged = core.EventDefaultChanged
)

// Listener receives registry events.
type Listener = core.Listener

// ListEventName returns the name of list-change events for d, for use with
// Registry.SubscribeName.
func ListEventName(d Descriptor) string {
	return core.ListEventName(d)
}

// DefaultEventName returns the name of default-change events for d.
func DefaultEventName(d Descriptor) string {
	return core.DefaultEventName(d)
}
