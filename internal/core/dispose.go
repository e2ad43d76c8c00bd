package core

import (
	"fmt"
)

// Disposer is implemented by instances that own resources. Dispose is called
// at most once per teardown cycle, on the registry's owner, after the
// instance has been removed from every list.
type Disposer interface {
	Dispose()
}

// dispose posts item's Dispose to the owner unless item is still registered
// under some type. Lists are scanned one at a time, each under its own lock.
// A skipped item is not revisited later.
func (r *Registry) dispose(item any, disp Disposer) {
	for _, l := range r.allLists() {
		if l.Contains(item) {
			Logger().Debug("not disposing item still registered under another type",
				"type", l.desc.Name(), "item_type", fmt.Sprintf("%T", item))
			return
		}
	}

	key, tracked := comparableKey(item)
	if tracked {
		r.disposeMu.Lock()
		_, posted := r.pending[key]
		if !posted {
			r.pending[key] = struct{}{}
		}
		r.disposeMu.Unlock()
		if posted {
			Logger().Debug("dispose already posted", "item_type", fmt.Sprintf("%T", item))
			return
		}
	}

	Logger().Debug("posting dispose", "item_type", fmt.Sprintf("%T", item))
	r.cfg.Owner.Post(func() {
		runDispose(item, disp)
		if tracked {
			r.forgetDisposal(item)
		}
	})
}

// forgetDisposal ends item's teardown cycle. It runs when item is registered
// again and after its Dispose has returned.
func (r *Registry) forgetDisposal(item any) {
	key, ok := comparableKey(item)
	if !ok {
		return
	}
	r.disposeMu.Lock()
	delete(r.pending, key)
	r.disposeMu.Unlock()
}

func runDispose(item any, disp Disposer) {
	defer func() {
		if p := recover(); p != nil {
			Logger().Error("dispose panicked",
				"item_type", fmt.Sprintf("%T", item), "panic", fmt.Sprint(p))
		}
	}()
	disp.Dispose()
}
