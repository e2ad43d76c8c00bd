package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Registry maps type descriptors to instance lists and runs the default
// construction protocol. It is safe for concurrent use by multiple
// goroutines.
//
// Configuration is stored in cfg and is immutable after construction.
//
// Synchronization strategy:
//   - mu guards the lists and names maps only. It is held briefly to find or
//     create a list and is never held while a per-type lock is taken or while
//     calling out of the registry.
//   - Each InstanceList carries the per-type lock for its items and
//     lifecycle record. Operations on one type are linearized by that lock;
//     there is no ordering across types.
//   - Events, constructors, post-construct hooks and disposal run with no
//     registry lock held.
//   - disposeMu guards pending, the set of comparable items whose Dispose has
//     been posted and has not returned yet.
type Registry struct {
	cfg Config

	// manifest is nil when the registry is isolated from the process
	// manifest.
	manifest *Manifest

	// providers is the per-type provider index, snapshotted at construction:
	// process manifest providers first, then cfg.Providers, each in
	// registration order.
	providers map[Descriptor][]Provider

	mu    sync.RWMutex
	lists map[Descriptor]*InstanceList
	names map[string]Descriptor

	events *dispatcher

	// seq numbers construction attempts for diagnostics.
	seq atomic.Uint64

	disposeMu sync.Mutex
	pending   map[any]struct{}
}

// NewRegistry creates a Registry with the provided configuration.
//
// Panics if cfg.Validate() reports any errors. Invalid configuration is a
// programmer error that should be caught at construction time, similar to
// regexp.MustCompile.
func NewRegistry(cfg Config) *Registry {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("instreg: invalid registry config: %v", err))
	}
	cfg = cfg.clone()

	r := &Registry{
		cfg:       cfg,
		providers: make(map[Descriptor][]Provider),
		lists:     make(map[Descriptor]*InstanceList),
		names:     make(map[string]Descriptor),
		events:    newDispatcher(),
		pending:   make(map[any]struct{}),
	}

	var providers []Provider
	if !cfg.IsolateManifest {
		r.manifest = ProcessManifest()
		providers = append(providers, r.manifest.Providers()...)
	}
	providers = append(providers, cfg.Providers...)
	for _, p := range providers {
		// A provider listing a type twice is still consulted once for it.
		for _, d := range sets.New(p.Types()...).UnsortedList() {
			r.providers[d] = append(r.providers[d], p)
			Logger().Debug("using provider for default instance",
				"type", d.Name(), "provider", fmt.Sprintf("%T", p))
		}
	}

	return r
}

// Config returns the registry's configuration. The returned value does not
// share its map or slice with the registry.
func (r *Registry) Config() Config {
	return r.cfg.clone()
}

// list returns the live list for d, creating it on first access. Creating a
// list fires a list-created event (index 0, nil/nil).
func (r *Registry) list(d Descriptor) *InstanceList {
	r.mu.RLock()
	l, ok := r.lists[d]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	l, ok = r.lists[d]
	if !ok {
		l = newInstanceList(d)
		r.lists[d] = l
		r.names[d.Name()] = d
	}
	r.mu.Unlock()

	if !ok {
		Logger().Debug("created instance list", "type", d.Name())
		r.events.fire(Event{Kind: EventListChanged, Name: ListEventName(d), Type: d})
	}
	return l
}

// existing returns the list for d without creating it.
func (r *Registry) existing(d Descriptor) (*InstanceList, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lists[d]
	return l, ok
}

// allLists returns a snapshot of every list.
func (r *Registry) allLists() []*InstanceList {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*InstanceList, 0, len(r.lists))
	for _, l := range r.lists {
		out = append(out, l)
	}
	return out
}

// List returns the live list for d, creating it if absent. It never triggers
// construction.
func (r *Registry) List(d Descriptor) *InstanceList {
	return r.list(d)
}

// Store appends item to d's list and fires an indexed-add event.
// Returns ErrNilItem if item is nil.
func (r *Registry) Store(d Descriptor, item any) error {
	Logger().Debug("store item", "type", d.Name())
	if isNil(item) {
		Logger().Error("should not store nil value", "type", d.Name())
		return fmt.Errorf("store %s: %w", d, ErrNilItem)
	}
	r.appendAndNotify(r.list(d), item)
	return nil
}

// StoreAny is Store with a run-time assignability check, for callers that
// only hold the item as a value of another static type. Returns
// ErrTypeMismatch if item's dynamic type is not assignable to d.
func (r *Registry) StoreAny(d Descriptor, item any) error {
	if isNil(item) {
		Logger().Error("should not store nil value", "type", d.Name())
		return fmt.Errorf("store %s: %w", d, ErrNilItem)
	}
	if !d.Accepts(item) {
		Logger().Error("attempt to do unchecked store with invalid type",
			"type", d.Name(), "item_type", fmt.Sprintf("%T", item))
		return fmt.Errorf("store %T as %s: %w", item, d, ErrTypeMismatch)
	}
	return r.Store(d, item)
}

// appendAndNotify appends item to l and fires the indexed-add event. A
// re-registered item starts a new teardown cycle.
func (r *Registry) appendAndNotify(l *InstanceList, item any) {
	l.mu.Lock()
	idx := l.appendLocked(item)
	l.mu.Unlock()

	r.forgetDisposal(item)
	r.events.fire(Event{
		Kind:  EventListChanged,
		Name:  ListEventName(l.desc),
		Type:  l.desc,
		Index: idx,
		New:   item,
	})
}

// Default returns the current default for d, constructing one if the list is
// empty. Returns ErrMissingDefault if no strategy produced an instance.
func (r *Registry) Default(d Descriptor) (any, error) {
	Logger().Debug("get default", "type", d.Name())
	v, ok := r.NullableDefault(d)
	if !ok {
		return nil, fmt.Errorf("required default for %s: %w", d, ErrMissingDefault)
	}
	return v, nil
}

// SetDefault makes item the default for d, registering it if absent. An item
// already present is moved to the tail, so it appears exactly once. A
// default-change event fires only when the new tail differs from the old one.
// Returns the resulting default.
func (r *Registry) SetDefault(d Descriptor, item any) (any, error) {
	Logger().Debug("set default", "type", d.Name())
	if isNil(item) {
		Logger().Error("should not set default to nil value", "type", d.Name())
		return nil, fmt.Errorf("set default %s: %w", d, ErrNilItem)
	}

	l := r.list(d)
	l.mu.Lock()
	old, hadOld := l.tailLocked()
	if i := l.indexLocked(item); i >= 0 {
		l.removeLocked(i)
	}
	l.appendLocked(item)
	l.mu.Unlock()

	r.forgetDisposal(item)
	if !hadOld || !sameItem(old, item) {
		r.events.fire(Event{
			Kind: EventDefaultChanged,
			Name: DefaultEventName(d),
			Type: d,
			Old:  old,
			New:  item,
		})
	}
	return r.Default(d)
}

// Deregister removes the first registration of item from d's list. When the
// list becomes empty the type's lifecycle resets to NotSet, so the next
// Default re-runs construction. If item implements Disposer and is no longer
// registered under any type, its disposal is posted to the owner. The
// indexed-remove event fires last.
//
// Deregistering an item that is not registered is not an error.
func (r *Registry) Deregister(d Descriptor, item any) error {
	Logger().Debug("remove item", "type", d.Name())
	if isNil(item) {
		return fmt.Errorf("deregister %s: %w", d, ErrNilItem)
	}

	l := r.list(d)
	l.mu.Lock()
	idx := l.indexLocked(item)
	var removed any
	if idx >= 0 {
		removed = l.items[idx]
		l.removeLocked(idx)
	}
	if len(l.items) == 0 {
		l.resetLocked()
	}
	l.mu.Unlock()

	if idx < 0 {
		return nil
	}
	if disp, ok := removed.(Disposer); ok {
		r.dispose(removed, disp)
	}
	r.events.fire(Event{
		Kind:  EventListChanged,
		Name:  ListEventName(d),
		Type:  d,
		Index: idx,
		Old:   removed,
	})
	return nil
}

// ContainsDefault reports whether d's list is non-empty. As a side effect it
// creates the list if absent, firing a list-created event; it never
// constructs a default.
func (r *Registry) ContainsDefault(d Descriptor) bool {
	return r.list(d).Len() > 0
}

// IsInitialized reports whether a list exists for d, without creating one or
// firing any event.
func (r *Registry) IsInitialized(d Descriptor) bool {
	_, ok := r.existing(d)
	return ok
}

// State returns d's lifecycle state without creating its list.
func (r *Registry) State(d Descriptor) InitState {
	l, ok := r.existing(d)
	if !ok {
		return StateNotSet
	}
	return l.State()
}

// Clear deregisters (and, where eligible, disposes) every entry of d, then
// resets d's lifecycle to NotSet. The list itself is kept, so its identity is
// unchanged.
func (r *Registry) Clear(d Descriptor) {
	Logger().Debug("clearing instances", "type", d.Name())
	l := r.list(d)
	for _, item := range l.Snapshot() {
		_ = r.Deregister(d, item) // item is non-nil: Store rejects nil
	}
	l.mu.Lock()
	l.resetLocked()
	l.mu.Unlock()
}

// Types returns the descriptors that have a list, sorted by name.
func (r *Registry) Types() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.lists))
	for d := range r.lists {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sortDescriptors(out)
	return out
}

// String returns a multi-line dump of every list and the dynamic types of
// its entries.
func (r *Registry) String() string {
	var b strings.Builder
	for _, d := range r.Types() {
		items := r.list(d).Snapshot()
		fmt.Fprintf(&b, "List of %s with %d objects\n", d, len(items))
		for _, item := range items {
			fmt.Fprintf(&b, "    %T\n", item)
		}
	}
	return b.String()
}

// Subscribe registers l for every event. The returned function removes it.
func (r *Registry) Subscribe(l Listener) func() {
	if l == nil {
		panic("instreg: listener must not be nil")
	}
	return r.events.subscribe("", l)
}

// SubscribeName registers l for events named name (see ListEventName and
// DefaultEventName). The returned function removes it.
func (r *Registry) SubscribeName(name string, l Listener) func() {
	if name == "" {
		panic("instreg: event name must not be empty")
	}
	if l == nil {
		panic("instreg: listener must not be nil")
	}
	return r.events.subscribe(name, l)
}

// Lookup resolves a descriptor by name. Names of types that have a list,
// that a provider serves, or that have an auto-default factory are known.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	d, ok := r.names[name]
	r.mu.RUnlock()
	if ok {
		return d, true
	}
	for d := range r.providers {
		if d.Name() == name {
			return d, true
		}
	}
	for d := range r.cfg.Factories {
		if d.Name() == name {
			return d, true
		}
	}
	if r.manifest != nil {
		return r.manifest.lookupName(name)
	}
	return Descriptor{}, false
}

func (r *Registry) lookup(name string) (Descriptor, error) {
	d, ok := r.Lookup(name)
	if !ok {
		Logger().Error("no type found", "name", name)
		return Descriptor{}, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}
	return d, nil
}

// ListByName returns a snapshot of the list for the named type, creating the
// list if absent. Returns ErrUnknownType if the name is not known.
func (r *Registry) ListByName(name string) ([]any, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.list(d).Snapshot(), nil
}

// DefaultByName is Default for a named type.
func (r *Registry) DefaultByName(name string) (any, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.Default(d)
}

// NullableDefaultByName is NullableDefault for a named type. The error is
// non-nil only for an unknown name.
func (r *Registry) NullableDefaultByName(name string) (any, bool, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, false, err
	}
	v, ok := r.NullableDefault(d)
	return v, ok, nil
}

// Owner returns the owner that runs this registry's disposals.
func (r *Registry) Owner() Owner {
	return r.cfg.Owner
}

// Flush waits for disposals posted so far when the owner implements Flusher.
// Other owners give no completion signal, so Flush returns nil immediately.
func (r *Registry) Flush(ctx context.Context) error {
	f, ok := r.cfg.Owner.(Flusher)
	if !ok {
		return nil
	}
	return f.Flush(ctx)
}
