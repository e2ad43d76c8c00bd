package trace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is the interval between attempts to acquire the trace
// file lock.
const lockRetryInterval = 50 * time.Millisecond

// acquireFileLock acquires an exclusive lock on lockPath, retrying until ctx
// is done.
func acquireFileLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring trace lock %s: %w", lockPath, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring trace lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring trace lock %s: lock not acquired", lockPath)
	}
	return fl, nil
}

// releaseFileLock closes fl, which also unlocks it. The lock file stays on
// disk; removing it could invalidate a lock another process just acquired.
func releaseFileLock(logger *slog.Logger, fl *flock.Flock) {
	if fl == nil {
		return
	}
	if err := fl.Close(); err != nil {
		logger.Debug("failed to release trace lock", "path", fl.Path(), "error", err)
	}
}
