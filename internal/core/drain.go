package core

import "strconv"

// Drain clears every type known to r, disposing eligible entries through the
// owner, and then warns about types that were re-initialized or refilled
// while draining. Warnings are logged, never returned.
//
// Drain is meant for a registry that has already been replaced as the
// process root; operations racing with it see it partially cleared.
func (r *Registry) Drain() {
	Logger().Debug("draining registry")
	r.traceRaw("clearAll")

	for _, d := range r.Types() {
		r.Clear(d)
	}

	for _, d := range r.Types() {
		l, ok := r.existing(d)
		if !ok {
			continue
		}
		if s := l.State(); s != StateNotSet {
			Logger().Warn("list was reinitialized during drain", "type", d.Name(), "state", s.String())
			r.traceRaw("WARN: list of " + d.Name() + " was reinitialized during clearAll")
		}
		if n := l.Len(); n > 0 {
			Logger().Warn("list was not cleared", "type", d.Name(), "entries", n)
			r.traceRaw("WARN: list of " + d.Name() + " was not cleared, " + strconv.Itoa(n) + " entries")
		}
	}

	// A blank line marks the start of the next registry in the trace.
	r.traceRaw("")
}
