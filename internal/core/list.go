package core

import "sync"

// InstanceList is the ordered set of instances registered for one type,
// together with that type's lifecycle record. The last element is the
// current default. Insertion order is preserved and Store does not reject
// duplicates.
//
// mu is the per-type lock: it guards items, state and attempt, and is never
// held while calling out of the registry (listeners, constructors, hooks,
// disposal) nor while another type's lock is held.
//
// Once created an InstanceList is never replaced, so its pointer identity is
// stable for the lifetime of the registry that owns it.
type InstanceList struct {
	desc Descriptor

	mu      sync.Mutex
	items   []any
	state   InitState
	attempt *Attempt
}

func newInstanceList(d Descriptor) *InstanceList {
	return &InstanceList{desc: d}
}

// Type returns the descriptor this list is keyed by.
func (l *InstanceList) Type() Descriptor {
	return l.desc
}

// Len returns the number of registered instances.
func (l *InstanceList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the instance at index i. It panics if i is out of range, like
// slice indexing.
func (l *InstanceList) At(i int) any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

// Snapshot returns a copy of the registered instances in insertion order.
func (l *InstanceList) Snapshot() []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]any, len(l.items))
	copy(cp, l.items)
	return cp
}

// Tail returns the current default without triggering construction.
func (l *InstanceList) Tail() (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tailLocked()
}

// State returns the lifecycle state of the type.
func (l *InstanceList) State() InitState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Contains reports whether item is registered in this list.
func (l *InstanceList) Contains(item any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexLocked(item) >= 0
}

func (l *InstanceList) tailLocked() (any, bool) {
	if n := len(l.items); n > 0 {
		return l.items[n-1], true
	}
	return nil, false
}

func (l *InstanceList) indexLocked(item any) int {
	for i, v := range l.items {
		if sameItem(v, item) {
			return i
		}
	}
	return -1
}

// appendLocked appends item and returns its index.
func (l *InstanceList) appendLocked(item any) int {
	l.items = append(l.items, item)
	return len(l.items) - 1
}

// removeLocked removes the element at i, preserving order.
func (l *InstanceList) removeLocked(i int) {
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
}

// resetLocked returns the lifecycle record to NotSet.
func (l *InstanceList) resetLocked() {
	l.state = StateNotSet
	l.attempt = nil
}
