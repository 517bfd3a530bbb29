package netresult

import "errors"

// ErrLoading is returned when a value is requested from a Loading outcome.
var ErrLoading = errors.New("netresult: outcome is still loading")

// OnSuccess calls f with the value if o is a Success and returns o.
func (o Outcome[T]) OnSuccess(f func(T)) Outcome[T] {
	if o.state == stateSuccess {
		f(o.value)
	}
	return o
}

// OnError calls f with the error if o is an Error and returns o.
func (o Outcome[T]) OnError(f func(*ErrorInfo)) Outcome[T] {
	if o.state == stateError {
		f(o.err)
	}
	return o
}

// OnLoading calls f if o is Loading and returns o.
func (o Outcome[T]) OnLoading(f func()) Outcome[T] {
	if o.state == stateLoading {
		f()
	}
	return o
}

// Value returns the value and true for a Success.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.state == stateSuccess
}

// GetOrNil returns a pointer to a copy of the value, or nil unless o is a
// Success.
func (o Outcome[T]) GetOrNil() *T {
	if o.state != stateSuccess {
		return nil
	}
	v := o.value
	return &v
}

// Unwrap returns the value of a Success, the *ErrorInfo of an Error, or
// ErrLoading.
func (o Outcome[T]) Unwrap() (T, error) {
	switch o.state {
	case stateSuccess:
		return o.value, nil
	case stateError:
		var zero T
		return zero, o.err
	default:
		var zero T
		return zero, ErrLoading
	}
}

// MustGet is like Unwrap but panics instead of returning an error.
func (o Outcome[T]) MustGet() T {
	v, err := o.Unwrap()
	if err != nil {
		panic(err)
	}
	return v
}

// Map transforms the value of a Success. Error and Loading pass through and
// f is not called. A panic in f is not recovered.
func Map[T, R any](o Outcome[T], f func(T) R) Outcome[R] {
	switch o.state {
	case stateSuccess:
		return Success(f(o.value))
	case stateError:
		return Failure[R](o.err)
	default:
		return Loading[R]()
	}
}
