package core

import (
	"context"
	"sync"

	"github.com/giantswarm/instreg/internal/owner"
)

// Owner is the designated execution context for teardown. Post must not run
// fn inline on the calling goroutine and must not block the caller.
type Owner interface {
	Post(fn func())
}

// Flusher is implemented by owners that can wait for previously posted
// callbacks to finish.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Compile-time check that the loop satisfies both contracts.
var (
	_ Owner   = (*owner.Loop)(nil)
	_ Flusher = (*owner.Loop)(nil)
)

var (
	defaultOwnerOnce sync.Once
	defaultOwner     *owner.Loop
)

// DefaultOwner returns the process-wide owner loop, starting it on first use.
// Registries replaced by a reset share it with their successors, so pending
// disposals of a drained registry still run.
func DefaultOwner() *owner.Loop {
	defaultOwnerOnce.Do(func() {
		defaultOwner = owner.New(owner.DefaultPollInterval, Logger())
	})
	return defaultOwner
}
