package instreg_test

import (
	"reflect"
	"testing"

	"github.com/giantswarm/instreg"
)

// TestInitStateMethodCount is a canary test that detects when methods are
// added to core.InitState, which automatically expands the public API through
// the type alias in state.go.
//
// If this test fails, a method was added to core.InitState. Either update
// expectedMethods or move the method off core.InitState.
func TestInitStateMethodCount(t *testing.T) {
	t.Parallel()

	const expectedMethods = 2

	actual := reflect.TypeFor[instreg.InitState]().NumMethod()
	if actual != expectedMethods {
		t.Errorf("InitState has %d methods, expected %d; "+
			"methods added to core.InitState automatically become "+
			"public API through the type alias in state.go",
			actual, expectedMethods)
	}
}

// TestInitStateMethodNames catches renames in addition to additions.
func TestInitStateMethodNames(t *testing.T) {
	t.Parallel()

	want := map[string]bool{
		"IsValid": true,
		"String":  true,
	}

	typ := reflect.TypeFor[instreg.InitState]()
	for i := range typ.NumMethod() {
		name := typ.Method(i).Name
		if !want[name] {
			t.Errorf("unexpected method %q on InitState", name)
		}
		delete(want, name)
	}
	for name := range want {
		t.Errorf("expected method %q not found on InitState", name)
	}
}

func TestInitStateString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		state instreg.InitState
		valid bool
	}{
		"NotSet":        {state: instreg.StateNotSet, valid: true},
		"NotStarted":    {state: instreg.StateNotStarted, valid: true},
		"Started":       {state: instreg.StateStarted, valid: true},
		"Failed":        {state: instreg.StateFailed, valid: true},
		"Done":          {state: instreg.StateDone, valid: true},
		"InitState(-1)": {state: instreg.InitState(-1)},
		"InitState(42)": {state: instreg.InitState(42)},
	}

	for want, tc := range tests {
		t.Run(want, func(t *testing.T) {
			t.Parallel()
			if got := tc.state.String(); got != want {
				t.Errorf("String() = %q, want %q", got, want)
			}
			if got := tc.state.IsValid(); got != tc.valid {
				t.Errorf("IsValid() = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestStateZeroValueIsNotSet(t *testing.T) {
	t.Parallel()

	var s instreg.InitState
	if s != instreg.StateNotSet {
		t.Errorf("zero InitState = %v, want NotSet", s)
	}
}
