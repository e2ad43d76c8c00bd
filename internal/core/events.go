package core

import (
	"fmt"
	"sync"
)

// EventKind distinguishes list mutations from default changes.
type EventKind int

const (
	// EventListChanged reports an indexed change of a type's list: an add
	// (Old nil, New item), a removal (Old item, New nil), or the creation of
	// the list itself (index 0, both nil).
	EventListChanged EventKind = iota

	// EventDefaultChanged reports that SetDefault moved a different item to
	// the tail of the list.
	EventDefaultChanged
)

// String returns the name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventListChanged:
		return "ListChanged"
	case EventDefaultChanged:
		return "DefaultChanged"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes one registry mutation. Name is ListEventName(Type) for
// EventListChanged and DefaultEventName(Type) for EventDefaultChanged.
type Event struct {
	Kind  EventKind
	Name  string
	Type  Descriptor
	Index int
	Old   any
	New   any
}

// Listener receives registry events. It runs synchronously on the goroutine
// that performed the mutation, after the mutation is complete and with no
// registry lock held, so it may call back into the registry.
type Listener func(Event)

// ListEventName returns the event name used for list changes of d.
func ListEventName(d Descriptor) string {
	return "list-" + d.Name()
}

// DefaultEventName returns the event name used for default changes of d.
func DefaultEventName(d Descriptor) string {
	return "default-" + d.Name()
}

type subscription struct {
	id uint64
	fn Listener
}

// dispatcher fans events out to global and per-name listeners.
type dispatcher struct {
	mu     sync.RWMutex
	nextID uint64
	global []subscription
	named  map[string][]subscription
}

func newDispatcher() *dispatcher {
	return &dispatcher{named: make(map[string][]subscription)}
}

// subscribe registers l for every event when name is empty, otherwise only
// for events with that name. The returned function removes the listener and
// is safe to call more than once.
func (d *dispatcher) subscribe(name string, l Listener) func() {
	d.mu.Lock()
	d.nextID++
	sub := subscription{id: d.nextID, fn: l}
	if name == "" {
		d.global = append(d.global, sub)
	} else {
		d.named[name] = append(d.named[name], sub)
	}
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.unsubscribe(name, sub.id) })
	}
}

func (d *dispatcher) unsubscribe(name string, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if name == "" {
		d.global = without(d.global, id)
		return
	}
	subs := without(d.named[name], id)
	if len(subs) == 0 {
		delete(d.named, name)
		return
	}
	d.named[name] = subs
}

func without(subs []subscription, id uint64) []subscription {
	out := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// fire delivers ev to global listeners, then to listeners of ev.Name, each in
// subscription order. Listeners are snapshotted first so they may subscribe or
// unsubscribe while being called.
func (d *dispatcher) fire(ev Event) {
	d.mu.RLock()
	if len(d.global) == 0 && len(d.named[ev.Name]) == 0 {
		d.mu.RUnlock()
		return
	}
	subs := make([]subscription, 0, len(d.global)+len(d.named[ev.Name]))
	subs = append(subs, d.global...)
	subs = append(subs, d.named[ev.Name]...)
	d.mu.RUnlock()

	for _, s := range subs {
		deliver(s.fn, ev)
	}
}

// deliver calls l, recovering and logging a panic so one faulty listener
// cannot break the mutating caller or starve later listeners.
func deliver(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("event listener panicked",
				"event", ev.Name, "kind", ev.Kind.String(), "panic", fmt.Sprint(r))
		}
	}()
	l(ev)
}
