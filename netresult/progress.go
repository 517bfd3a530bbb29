package netresult

import (
	"context"
	"errors"
	"iter"
)

// Progress returns a sequence that yields Loading, runs op, then yields
// Success or the classified Error. Each range over the sequence runs op
// again. If ctx is cancelled the sequence ends after Loading; a deadline
// is reported as a Timeout error.
func Progress[T any](ctx context.Context, op func(context.Context) (T, error)) iter.Seq[Outcome[T]] {
	return func(yield func(Outcome[T]) bool) {
		if !yield(Loading[T]()) {
			return
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		v, err := op(ctx)
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		if err != nil {
			yield(Failure[T](Classify(err)))
			return
		}
		yield(Success(v))
	}
}
