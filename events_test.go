package instreg_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/giantswarm/instreg"
)

// eventLog collects events delivered to a listener.
type eventLog struct {
	mu     sync.Mutex
	events []instreg.Event
}

func (l *eventLog) listen(ev instreg.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []instreg.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

func TestListEvents(t *testing.T) {
	t.Parallel()
	reg := isolated(t)

	var got eventLog
	cancel := reg.Subscribe(got.listen)
	defer cancel()

	a, b := &Widget{name: "A"}, &Widget{name: "B"}
	_ = instreg.Store(reg, a)
	_ = instreg.Store(reg, b)
	_ = instreg.Deregister(reg, a)

	name := instreg.ListEventName(instreg.TypeOf[*Widget]())
	want := []struct {
		index    int
		old, new any
	}{
		{index: 0},         // list created
		{index: 0, new: a}, // add A
		{index: 1, new: b}, // add B
		{index: 0, old: a}, // remove A
	}

	events := got.all()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		ev := events[i]
		if ev.Kind != instreg.EventListChanged || ev.Name != name {
			t.Errorf("event %d = %v %q, want ListChanged %q", i, ev.Kind, ev.Name, name)
		}
		if ev.Index != w.index || ev.Old != w.old || ev.New != w.new {
			t.Errorf("event %d = index %d old %v new %v, want index %d old %v new %v",
				i, ev.Index, ev.Old, ev.New, w.index, w.old, w.new)
		}
	}
}

func TestDefaultChangedOnlyWhenTailChanges(t *testing.T) {
	t.Parallel()
	reg := isolated(t)

	a, b := &Widget{name: "A"}, &Widget{name: "B"}
	_ = instreg.Store(reg, a)
	_ = instreg.Store(reg, b)

	var got eventLog
	cancel := reg.SubscribeName(instreg.DefaultEventName(instreg.TypeOf[*Widget]()), got.listen)
	defer cancel()

	_, _ = instreg.SetDefault(reg, b) // already the default
	_, _ = instreg.SetDefault(reg, a)
	_, _ = instreg.SetDefault(reg, a)

	events := got.all()
	if len(events) != 1 {
		t.Fatalf("got %d default-change events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Kind != instreg.EventDefaultChanged || ev.Old != b || ev.New != a {
		t.Errorf("event = %v old %v new %v, want DefaultChanged old B new A", ev.Kind, ev.Old, ev.New)
	}
}

func TestListenerOrderAndCancel(t *testing.T) {
	t.Parallel()
	reg := isolated(t)

	var mu sync.Mutex
	var order []string
	record := func(tag string) instreg.Listener {
		return func(instreg.Event) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, tag)
		}
	}

	name := instreg.ListEventName(instreg.TypeOf[*Gadget]())
	cancelNamed := reg.SubscribeName(name, record("named"))
	cancelGlobal := reg.Subscribe(record("global"))
	_ = reg.SubscribeName(instreg.ListEventName(instreg.TypeOf[*Widget]()), record("other"))

	_ = instreg.List[*Gadget](reg)
	mu.Lock()
	if !slices.Equal(order, []string{"global", "named"}) {
		t.Errorf("delivery order = %v, want [global named]", order)
	}
	order = nil
	mu.Unlock()

	cancelNamed()
	cancelNamed() // idempotent
	cancelGlobal()
	_ = instreg.Store(reg, &Gadget{})

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 0 {
		t.Errorf("cancelled listeners still called: %v", order)
	}
}

func TestListenerMayReenterAndPanic(t *testing.T) {
	t.Parallel()
	reg := isolated(t)

	var lens []int
	reg.Subscribe(func(instreg.Event) { panic("listener bug") })
	reg.SubscribeName(instreg.ListEventName(instreg.TypeOf[*Widget]()), func(ev instreg.Event) {
		// Listeners run outside the registry's locks.
		lens = append(lens, instreg.List[*Widget](reg).Len())
	})

	if err := instreg.Store(reg, &Widget{}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !slices.Equal(lens, []int{0, 1}) {
		t.Errorf("listener saw lengths %v, want [0 1]", lens)
	}
}

func TestSubscribePanicsOnInvalid(t *testing.T) {
	t.Parallel()
	reg := isolated(t)

	runPanicTests(t, []panicTestCase{
		{
			name:     "nil_listener",
			panics:   true,
			panicMsg: "instreg: listener must not be nil",
			fn:       func() { reg.Subscribe(nil) },
		},
		{
			name:     "empty_name",
			panics:   true,
			panicMsg: "instreg: event name must not be empty",
			fn:       func() { reg.SubscribeName("", func(instreg.Event) {}) },
		},
	})
}
