package core

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// InitState is the per-type lifecycle state of default construction.
//
// Transitions for a single attempt are {NotSet|NotStarted} → Started →
// {Done|Failed}. Emptying a type's list (Deregister of the last entry, Clear,
// drain) returns it to NotSet.
type InitState int

const (
	// StateNotSet means no attempt has been recorded since the list was
	// created or last emptied. It is the zero value.
	StateNotSet InitState = iota

	// StateNotStarted is equivalent to StateNotSet for the protocol. It is
	// kept as a distinct value for callers that record explicit resets.
	StateNotStarted

	// StateStarted means a construction attempt is in progress.
	StateStarted

	// StateFailed means the last attempt produced no instance.
	StateFailed

	// StateDone means the last attempt produced and registered an instance.
	StateDone
)

// IsValid reports whether s is a recognized InitState value.
func (s InitState) IsValid() bool {
	switch s {
	case StateNotSet, StateNotStarted, StateStarted, StateFailed, StateDone:
		return true
	default:
		return false
	}
}

// String returns the name of the state.
func (s InitState) String() string {
	switch s {
	case StateNotSet:
		return "NotSet"
	case StateNotStarted:
		return "NotStarted"
	case StateStarted:
		return "Started"
	case StateFailed:
		return "Failed"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("InitState(%d)", int(s))
	}
}

// Attempt is the diagnostic record captured when a type enters StateStarted.
// Goroutines have no identity, so the attempt is identified by a registry-wide
// sequence number and the first caller frame outside this module.
type Attempt struct {
	Seq    uint64
	Caller string
	At     time.Time
}

// String implements fmt.Stringer.
func (a *Attempt) String() string {
	if a == nil {
		return "<none>"
	}
	return fmt.Sprintf("#%d %s", a.Seq, a.Caller)
}

// modulePrefixes are the function-name prefixes skipped when locating the
// caller of a registry operation.
var modulePrefixes = []string{
	"github.com/giantswarm/instreg.",
	"github.com/giantswarm/instreg/internal/",
}

const maxCallerDepth = 32

// callerFrame returns "function file:line" for the first stack frame that does
// not belong to this module, or "unknown".
func callerFrame() string {
	pcs := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !inModule(f.Function) {
			return fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
		}
		if !more {
			return "unknown"
		}
	}
}

func inModule(fn string) bool {
	for _, p := range modulePrefixes {
		if strings.HasPrefix(fn, p) {
			return true
		}
	}
	return false
}
