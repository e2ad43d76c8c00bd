package instreg

import (
	"log/slog"

	"github.com/giantswarm/instreg/internal/core"
)

// SetLogger replaces the package-level logger used by instreg.
// This allows applications to integrate instreg logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; instreg will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with
// "component" attribute, re-derived on the next Logger() call and then
// cached. Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// Thread safety: SetLogger is safe to call concurrently with registry
// operations. A concurrent operation may briefly log through the previous
// logger. For a strict happens-before guarantee, call SetLogger before
// starting goroutines that use the library (e.g., in TestMain before m.Run).
//
// Example:
//
//	instreg.SetLogger(myLogger.With("component", "instreg"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
