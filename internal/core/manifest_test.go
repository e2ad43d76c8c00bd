package core

import (
	"testing"
)

func TestManifest_RegisterFactory(t *testing.T) {
	t.Parallel()

	m := NewManifest()
	if _, ok := m.Factory(itemType); ok {
		t.Fatal("empty manifest has a factory")
	}

	m.RegisterFactory(itemType, func() (any, error) { return &testItem{name: "first"}, nil })
	m.RegisterFactory(itemType, func() (any, error) { return &testItem{name: "second"}, nil })

	f, ok := m.Factory(itemType)
	if !ok {
		t.Fatal("Factory() ok = false after registration")
	}
	v, _ := f()
	if got := v.(*testItem).name; got != "second" {
		t.Errorf("factory = %q, want the later registration", got)
	}
	if d, ok := m.lookupName(itemType.Name()); !ok || d != itemType {
		t.Errorf("lookupName() = %v, %v", d, ok)
	}
}

func TestManifest_RegisterPanics(t *testing.T) {
	t.Parallel()

	tests := map[string]func(m *Manifest){
		"zero descriptor": func(m *Manifest) {
			m.RegisterFactory(Descriptor{}, func() (any, error) { return nil, nil })
		},
		"nil factory":  func(m *Manifest) { m.RegisterFactory(itemType, nil) },
		"nil provider": func(m *Manifest) { m.RegisterProvider(nil) },
	}

	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn(NewManifest())
		})
	}
}

func TestManifest_ProvidersIsCopy(t *testing.T) {
	t.Parallel()

	m := NewManifest()
	m.RegisterProvider(staticProvider{name: "a"})
	ps := m.Providers()
	ps[0] = nil
	if m.Providers()[0] == nil {
		t.Error("Providers() exposed the manifest's slice")
	}
}
