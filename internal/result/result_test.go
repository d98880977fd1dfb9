// ABOUTME: Tests for the tri-state result type
// ABOUTME: Verifies variant accessors, zero value, and MustValue panics
package result

import (
	"errors"
	"testing"
)

func TestSuccess(t *testing.T) {
	r := Success(42)

	if !r.IsSuccess() || r.IsFailure() || r.IsLoading() {
		t.Errorf("Success state flags wrong: %v", r.State())
	}
	v, ok := r.Value()
	if !ok || v != 42 {
		t.Errorf("Value() = %d, %v, want 42, true", v, ok)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestFailure(t *testing.T) {
	sentinel := errors.New("boom")
	r := Failure[int](sentinel)

	if !r.IsFailure() || r.IsSuccess() || r.IsLoading() {
		t.Errorf("Failure state flags wrong: %v", r.State())
	}
	if _, ok := r.Value(); ok {
		t.Error("Value() ok = true on failure")
	}
	if !errors.Is(r.Err(), sentinel) {
		t.Errorf("Err() = %v, want %v", r.Err(), sentinel)
	}
}

func TestZeroValueIsLoading(t *testing.T) {
	var r Result[string]

	if !r.IsLoading() {
		t.Errorf("zero value state = %v, want Loading", r.State())
	}
	if _, ok := r.Value(); ok {
		t.Error("Value() ok = true while loading")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestMustValuePanicsOnFailure(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustValue() on failure should panic")
		}
	}()
	Failure[int](errors.New("boom")).MustValue()
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateLoading, "Loading"},
		{StateSuccess, "Success"},
		{StateFailure, "Failure"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
