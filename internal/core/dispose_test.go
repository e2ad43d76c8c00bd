package core

import (
	"testing"
)

type disposable struct{ disposed int }

func (d *disposable) Dispose() { d.disposed++ }

func TestDispose_ScansEveryList(t *testing.T) {
	t.Parallel()
	r, own := newTestRegistry()

	first, second := DescriptorOf[*disposable](), DescriptorOf[any]()
	item := &disposable{}
	_ = r.Store(first, item)
	_ = r.Store(second, item)

	_ = r.Deregister(first, item)
	if len(own.posted) != 0 {
		t.Fatalf("posted %d disposals while registered under %s", len(own.posted), second)
	}
	_ = r.Deregister(second, item)
	if len(own.posted) != 1 {
		t.Fatalf("posted %d disposals, want 1", len(own.posted))
	}
	own.posted[0]()
	if item.disposed != 1 {
		t.Errorf("disposed %d times, want 1", item.disposed)
	}
}

func TestDispose_NonDisposerIsNotPosted(t *testing.T) {
	t.Parallel()
	r, own := newTestRegistry()

	item := &testItem{}
	_ = r.Store(itemType, item)
	_ = r.Deregister(itemType, item)
	if len(own.posted) != 0 {
		t.Errorf("posted %d callbacks for a non-Disposer", len(own.posted))
	}
}

func TestDispose_PendingIsPerCycle(t *testing.T) {
	t.Parallel()
	r, own := newTestRegistry()

	d := DescriptorOf[*disposable]()
	item := &disposable{}

	// Direct calls model two removals racing after the last registration
	// is gone.
	r.dispose(item, item)
	r.dispose(item, item)
	if len(own.posted) != 1 {
		t.Fatalf("posted %d disposals in one cycle, want 1", len(own.posted))
	}

	_ = r.Store(d, item)
	_ = r.Deregister(d, item)
	if len(own.posted) != 2 {
		t.Errorf("re-registration did not start a new cycle: %d posted", len(own.posted))
	}
}

func TestDispose_PendingReleasedAfterDispose(t *testing.T) {
	t.Parallel()
	r, own := newTestRegistry()

	d := DescriptorOf[*disposable]()
	items := make([]*disposable, 100)
	for i := range items {
		items[i] = &disposable{}
		_ = r.Store(d, items[i])
		_ = r.Deregister(d, items[i])
	}
	if len(own.posted) != len(items) {
		t.Fatalf("posted %d disposals, want %d", len(own.posted), len(items))
	}
	for _, fn := range own.posted {
		fn()
	}

	r.disposeMu.Lock()
	n := len(r.pending)
	r.disposeMu.Unlock()
	if n != 0 {
		t.Errorf("pending holds %d disposed items, want 0", n)
	}
	for i, item := range items {
		if item.disposed != 1 {
			t.Errorf("item %d disposed %d times, want 1", i, item.disposed)
		}
	}
}
