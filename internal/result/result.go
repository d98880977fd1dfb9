// ABOUTME: Tri-state outcome type used as the uniform return contract of pipeline stages
// ABOUTME: A Result is exactly one of Loading, Success(value), or Failure(err)
package result

import "fmt"

// State discriminates the three variants of a Result.
type State int

const (
	// StateLoading means the operation has started but not completed.
	StateLoading State = iota
	// StateSuccess means the operation completed with a value.
	StateSuccess
	// StateFailure means the operation completed with an error.
	StateFailure
)

// Result is a discriminated union over an operation outcome. Loading is a
// first-class state, never a nil sentinel. The zero value is Loading.
type Result[T any] struct {
	state State
	value T
	err   error
}

// Success wraps a successful outcome.
func Success[T any](value T) Result[T] {
	return Result[T]{state: StateSuccess, value: value}
}

// Failure wraps a failed outcome.
func Failure[T any](err error) Result[T] {
	return Result[T]{state: StateFailure, err: err}
}

// Loading marks an operation in progress.
func Loading[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

// State returns the variant discriminator.
func (r Result[T]) State() State { return r.state }

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.state == StateSuccess }

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool { return r.state == StateFailure }

// IsLoading reports whether the operation is still in progress.
func (r Result[T]) IsLoading() bool { return r.state == StateLoading }

// Value returns the encapsulated value and whether one is present.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == StateSuccess
}

// Err returns the encapsulated error, or nil for Success and Loading.
func (r Result[T]) Err() error { return r.err }

// MustValue returns the value or panics. Intended for tests and for call
// sites that have already checked IsSuccess.
func (r Result[T]) MustValue() T {
	if r.state != StateSuccess {
		panic(fmt.Sprintf("result: MustValue on %v result (err=%v)", r.state, r.err))
	}
	return r.value
}

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateSuccess:
		return "Success"
	case StateFailure:
		return "Failure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
