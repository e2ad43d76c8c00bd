package instreg

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/giantswarm/instreg/internal/core"
	"github.com/giantswarm/instreg/internal/trace"
)

// Singleton state for Root. The first call configures the root registry;
// subsequent calls return the current root and log a warning when options
// are passed.
//
// rootMu protects rootCfg and rootOnce so that resetForTesting is
// concurrency-safe with Root. root itself is an atomic pointer so that
// accessors and ClearAll never contend on rootMu once the root exists.
var (
	rootMu   sync.Mutex
	rootOnce sync.Once
	rootCfg  core.Config
	root     atomic.Pointer[Registry]
)

// Registry is a typed instance registry: per type, an ordered list of
// registered instances whose last element is the current default.
//
// The core.Registry is stored as a named (unexported) field rather than
// embedded so the public surface stays limited to the generic accessors and
// the methods below.
type Registry struct {
	r *core.Registry

	// ownsTracer is set when the registry opened its own trace file, which
	// Close then releases.
	ownsTracer bool
}

// New returns an independent registry. It is not affected by ClearAll.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
func New(opts ...Option) *Registry {
	cfg := applyOptions(opts)
	coreCfg, owned := resolveTracer(cfg)
	return &Registry{r: core.NewRegistry(coreCfg), ownsTracer: owned}
}

// Root returns the process-root registry used by the accessors when they are
// given a nil *Registry.
//
// The first call creates the root with the given options. Later calls return
// the current root; options are ignored and a warning is logged. ClearAll
// replaces the root with a fresh registry built from the same configuration.
func Root(opts ...Option) *Registry {
	rootMu.Lock()
	defer rootMu.Unlock()

	// created is written inside the Do closure and read after Do returns.
	// sync.Once guarantees the closure completes before Do returns.
	created := false
	rootOnce.Do(func() {
		cfg := applyOptions(opts)
		rootCfg, _ = resolveTracer(cfg)
		root.Store(&Registry{r: core.NewRegistry(rootCfg)})
		created = true
	})
	if !created && len(opts) > 0 {
		core.Logger().Warn("Root called with options after the root registry was created; options ignored")
	}
	return root.Load()
}

// currentRoot returns the root registry, creating it with defaults if Root
// was never called.
func currentRoot() *Registry {
	if r := root.Load(); r != nil {
		return r
	}
	return Root()
}

// ClearAll replaces the process-root registry with a fresh one and then
// drains the outgoing registry: every type is cleared, Disposers no longer
// registered anywhere are disposed through the owner, and residue is logged
// as a warning. Callers that resolve the root after the swap see only the
// new registry; references to the old one see it emptied.
//
// The new root reuses the outgoing root's configuration, including its
// owner and tracer.
func ClearAll() {
	rootMu.Lock()
	old := currentRootLocked()
	root.Store(&Registry{r: core.NewRegistry(rootCfg)})
	rootMu.Unlock()

	old.Drain()
}

// currentRootLocked is currentRoot for callers holding rootMu.
func currentRootLocked() *Registry {
	if r := root.Load(); r != nil {
		return r
	}
	rootOnce.Do(func() {
		rootCfg, _ = resolveTracer(applyOptions(nil))
		root.Store(&Registry{r: core.NewRegistry(rootCfg)})
	})
	return root.Load()
}

// resolveTracer builds the tracer selected by cfg. The boolean reports
// whether a trace file was opened, which the caller then owns.
func resolveTracer(cfg registryConfig) (core.Config, bool) {
	out := cfg.Config
	switch {
	case cfg.traceWriter != nil:
		out.Tracer = trace.New(cfg.traceWriter, core.Logger())
	case cfg.traceFile != "":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.traceLockTimeout)
		defer cancel()
		t, err := trace.OpenFile(ctx, cfg.traceFile, cfg.traceAppend, core.Logger())
		if err != nil {
			core.Logger().Warn("trace file unavailable; continuing without trace",
				"path", cfg.traceFile, "error", err)
			return out, false
		}
		out.Tracer = t
		return out, true
	}
	return out, false
}

// resetForTesting resets the root singleton so that the next call to Root
// creates a fresh registry with new options. It must only be called from
// tests.
func resetForTesting() {
	rootMu.Lock()
	defer rootMu.Unlock()

	root.Store(nil)
	rootCfg = core.Config{}
	rootOnce = sync.Once{}
}

// resolve maps a nil *Registry to the process root.
func resolve(r *Registry) *core.Registry {
	if r == nil {
		return currentRoot().r
	}
	return r.r
}

// Drain clears every type in r, disposing eligible instances, and logs a
// warning for each type that was re-initialized or still holds entries
// afterwards. ClearAll drains the outgoing root; call Drain directly to tear
// down a registry created with New.
func (r *Registry) Drain() {
	resolve(r).Drain()
}

// Flush waits until disposals posted so far by r have run, when r's owner
// supports it (the default owner and NewOwnerLoop do). Returns ctx.Err() if
// ctx is done first.
func (r *Registry) Flush(ctx context.Context) error {
	return resolve(r).Flush(ctx)
}

// Close waits up to DefaultOwnerCloseTimeout for pending disposals and
// releases the trace file opened by WithTraceFile. It does not drain r.
// Close is a no-op for the root registry's trace, which outlives ClearAll.
func (r *Registry) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultOwnerCloseTimeout)
	defer cancel()

	cr := resolve(r)
	err := cr.Flush(ctx)
	if r != nil && r.ownsTracer {
		err = errors.Join(err, cr.Config().Tracer.Close())
	}
	return err
}

// Types returns the descriptors of every type that has a list, sorted by
// name.
func (r *Registry) Types() []Descriptor {
	return resolve(r).Types()
}

// String returns a multi-line dump of every list, one "List of T with N
// objects" header per type followed by the dynamic type of each entry.
func (r *Registry) String() string {
	return resolve(r).String()
}

// Subscribe registers l for every list and default change in r. Listeners
// run synchronously on the goroutine that made the change, after it is
// complete, and may call back into the registry. The returned function
// removes l.
//
// Panics if l is nil.
func (r *Registry) Subscribe(l Listener) (cancel func()) {
	return resolve(r).Subscribe(l)
}

// SubscribeName registers l for events with the given name; see
// ListEventName and DefaultEventName. Named listeners run after global ones.
//
// Panics if name is empty or l is nil.
func (r *Registry) SubscribeName(name string, l Listener) (cancel func()) {
	return resolve(r).SubscribeName(name, l)
}

// ListByName returns the instances registered under the type with the given
// fully qualified name. Returns ErrUnknownType for a name the registry has
// never seen.
func (r *Registry) ListByName(name string) ([]any, error) {
	return resolve(r).ListByName(name)
}

// DefaultByName is Default for a type identified by name.
func (r *Registry) DefaultByName(name string) (any, error) {
	return resolve(r).DefaultByName(name)
}

// NullableDefaultByName is NullableDefault for a type identified by name.
// The error is non-nil only when the name is unknown.
func (r *Registry) NullableDefaultByName(name string) (any, bool, error) {
	return resolve(r).NullableDefaultByName(name)
}
