package netresult

import "fmt"

type state uint8

const (
	stateLoading state = iota
	stateSuccess
	stateError
)

// Outcome holds the result of a call: a value, an error, or Loading while
// the call is still in flight. The zero value is Loading, so all Loading
// outcomes of the same type compare equal.
type Outcome[T any] struct {
	state state
	value T
	err   *ErrorInfo
}

// Success wraps a value.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{state: stateSuccess, value: v}
}

// Failure wraps an error. A nil info is recorded as an unknown error.
func Failure[T any](info *ErrorInfo) Outcome[T] {
	if info == nil {
		info = NewUnknown("", nil)
	}
	return Outcome[T]{state: stateError, err: info}
}

// Loading returns the in-flight outcome.
func Loading[T any]() Outcome[T] {
	return Outcome[T]{}
}

func (o Outcome[T]) IsSuccess() bool { return o.state == stateSuccess }
func (o Outcome[T]) IsError() bool   { return o.state == stateError }
func (o Outcome[T]) IsLoading() bool { return o.state == stateLoading }

// Err returns the error of an Error outcome and nil otherwise.
func (o Outcome[T]) Err() *ErrorInfo {
	return o.err
}

func (o Outcome[T]) String() string {
	switch o.state {
	case stateSuccess:
		return fmt.Sprintf("Success(%v)", o.value)
	case stateError:
		return fmt.Sprintf("Error(%v)", o.err)
	default:
		return "Loading"
	}
}
