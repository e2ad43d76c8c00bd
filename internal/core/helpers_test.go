package core

import "fmt"

type testItem struct{ name string }

// staticProvider serves testItem values named after the provider.
type staticProvider struct{ name string }

func (p staticProvider) Types() []Descriptor {
	return []Descriptor{DescriptorOf[*testItem](), DescriptorOf[*testItem]()}
}

func (p staticProvider) Default(d Descriptor) (any, error) {
	if d != DescriptorOf[*testItem]() {
		return nil, fmt.Errorf("%s: %w", d, ErrUnsupportedType)
	}
	return &testItem{name: p.name}, nil
}

// newTestRegistry returns a registry isolated from the process manifest
// whose owner queues callbacks without running them.
func newTestRegistry(opts ...func(*Config)) (*Registry, *recordingOwner) {
	own := &recordingOwner{}
	cfg := Config{Owner: own, IsolateManifest: true}
	for _, o := range opts {
		o(&cfg)
	}
	return NewRegistry(cfg), own
}

type recordingOwner struct {
	posted []func()
}

func (o *recordingOwner) Post(fn func()) { o.posted = append(o.posted, fn) }
