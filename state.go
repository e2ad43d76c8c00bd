package instreg

import "github.com/giantswarm/instreg/internal/core"

// InitState is the lifecycle state of default construction for one type.
//
// InitState is a type alias (not a named type) so that the underlying
// [core.InitState] methods are part of the public API:
//
//   - IsValid reports whether the value is a recognized state.
//   - String returns the state name (implements [fmt.Stringer]).
//
// Audit: new methods added to core.InitState automatically become part of
// the public API through this alias.
type InitState = core.InitState

const (
	// StateNotSet means no construction attempt has been recorded since the
	// type's list was created or last emptied.
	StateNotSet = core.StateNotSet

	// StateNotStarted is treated like StateNotSet by the registry.
	StateNotStarted = core.StateNotStarted

	// StateStarted means a construction attempt is in progress.
	StateStarted = core.StateStarted

	// StateFailed means the last attempt produced no instance. The next
	// Default call tries again.
	StateFailed = core.StateFailed

	// StateDone means the last attempt registered an instance.
	StateDone = core.StateDone
)
