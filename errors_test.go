package instreg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/giantswarm/instreg"
)

// allSentinels lists every exported sentinel error.
var allSentinels = map[string]error{
	"ErrConstructorPanic": instreg.ErrConstructorPanic,
	"ErrMissingDefault":   instreg.ErrMissingDefault,
	"ErrNilItem":          instreg.ErrNilItem,
	"ErrTypeMismatch":     instreg.ErrTypeMismatch,
	"ErrUnknownType":      instreg.ErrUnknownType,
	"ErrUnsupportedType":  instreg.ErrUnsupportedType,
}

// TestPublicErrorConstants verifies that every exported error constant:
//   - implements the error interface (Error() returns a non-empty string)
//   - matches itself via errors.Is, directly and when wrapped
//   - does not match an unrelated error
func TestPublicErrorConstants(t *testing.T) {
	t.Parallel()

	for name, sentinel := range allSentinels {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if sentinel == nil {
				t.Fatalf("%s is nil", name)
			}
			if msg := sentinel.Error(); msg == "" {
				t.Errorf("%s.Error() returned empty string", name)
			}
			if !errors.Is(sentinel, sentinel) {
				t.Errorf("errors.Is(%s, %s) = false, want true (self-match)", name, name)
			}
			wrapped := fmt.Errorf("wrapping: %w", sentinel)
			if !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(wrapped %s) = false, want true", name)
			}
			if errors.Is(sentinel, errors.New("some other error")) {
				t.Errorf("errors.Is(%s, errors.New(...)) = true, want false", name)
			}
		})
	}
}

// TestPublicErrorConstantsAreDistinct verifies that no two exported error
// constants match each other.
func TestPublicErrorConstantsAreDistinct(t *testing.T) {
	t.Parallel()

	for a, errA := range allSentinels {
		for b, errB := range allSentinels {
			if a != b && errors.Is(errA, errB) {
				t.Errorf("errors.Is(%s, %s) = true: constants must be distinct", a, b)
			}
		}
	}
}

func TestConstructionErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", &instreg.ConstructionError{
		Type:     instreg.TypeOf[*Gadget](),
		Strategy: instreg.StrategyProvider,
		Err:      cause,
	})

	var ce *instreg.ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("errors.As(%v, *ConstructionError) = false, want true", err)
	}
	if ce.Strategy != instreg.StrategyProvider {
		t.Errorf("Strategy = %v, want %v", ce.Strategy, instreg.StrategyProvider)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	want := "construct default *instreg_test.Gadget via provider: boom"
	if got := ce.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
