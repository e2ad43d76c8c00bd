package owner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// DefaultPollInterval is how often Flush checks whether the loop has caught
// up with the callbacks posted before it was called.
const DefaultPollInterval = 5 * time.Millisecond

// ErrClosed is returned by Flush once the loop has been closed and its queue
// drained.
var ErrClosed = errors.New("owner loop is closed")

// Loop is a single-goroutine executor. Post never blocks: callbacks are
// queued without bound and run in the order they were posted.
//
// Synchronization strategy:
//   - mu guards queue and closed.
//   - wake is a 1-buffered channel signalling the goroutine that the queue
//     became non-empty or the loop was closed.
//   - posted and done are sequence counters; Flush waits until done reaches
//     the posted value observed on entry.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake    chan struct{}
	stopped chan struct{}

	posted atomic.Uint64
	done   atomic.Uint64

	interval time.Duration
	log      *slog.Logger
}

// New starts a Loop. A non-positive interval selects DefaultPollInterval; a
// nil logger selects slog.Default().
func New(interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
		interval: interval,
		log:      logger,
	}
	go l.run()
	return l
}

// Post queues fn and returns immediately. After Close, fn is dropped and a
// warning is logged.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.log.Warn("owner loop closed; dropping posted callback")
		return
	}
	l.queue = append(l.queue, fn)
	l.posted.Add(1)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every callback posted before the call has run, or ctx
// is done.
func (l *Loop) Flush(ctx context.Context) error {
	target := l.posted.Load()
	err := wait.PollUntilContextCancel(ctx, l.interval, true, func(context.Context) (bool, error) {
		if l.done.Load() >= target {
			return true, nil
		}
		select {
		case <-l.stopped:
			return false, ErrClosed
		default:
			return false, nil
		}
	})
	if err != nil {
		return fmt.Errorf("flush owner loop: %w", err)
	}
	return nil
}

// Close stops accepting callbacks, lets the goroutine run what is already
// queued, and waits for it to exit or for ctx to be done. Close is
// idempotent.
func (l *Loop) Close(ctx context.Context) error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}

	select {
	case <-l.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("close owner loop: %w", ctx.Err())
	}
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			closed := l.closed
			l.mu.Unlock()
			if closed {
				return
			}
			<-l.wake
			continue
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.invoke(fn)
		l.done.Add(1)
	}
}

// invoke runs fn, recovering a panic so one failing teardown does not stop
// the loop.
func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("owner callback panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
