package instreg

import "time"

// Default configuration values for New and Root.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultTraceLockTimeout).
const (
	// DefaultTraceFileName is the conventional file name for the
	// initialization trace. It is not used unless passed to WithTraceFile.
	DefaultTraceFileName = "instreg-trace.txt"

	// DefaultTraceLockTimeout bounds how long opening a trace file waits for
	// the exclusive lock held by another process writing the same file.
	DefaultTraceLockTimeout = 10 * time.Second

	// DefaultOwnerFlushInterval is how often an owner loop created by
	// NewOwnerLoop checks whether posted disposals have completed.
	DefaultOwnerFlushInterval = 5 * time.Millisecond

	// DefaultOwnerCloseTimeout bounds how long Registry.Close waits for
	// disposals that are still queued on the owner.
	DefaultOwnerCloseTimeout = 5 * time.Second
)
