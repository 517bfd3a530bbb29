package netresult

import (
	"context"
	"errors"
	"testing"
	"time"
)

func collect[T any](ctx context.Context, op func(context.Context) (T, error)) []Outcome[T] {
	var events []Outcome[T]
	for o := range Progress(ctx, op) {
		events = append(events, o)
	}
	return events
}

func TestProgress_Success(t *testing.T) {
	events := collect(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if !events[0].IsLoading() {
		t.Errorf("first event: got %v, want Loading", events[0])
	}
	if v, ok := events[1].Value(); !ok || v != 7 {
		t.Errorf("second event: got %v, want Success(7)", events[1])
	}
}

func TestProgress_ErrorAfterDelay(t *testing.T) {
	events := collect(context.Background(), func(context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 0, context.DeadlineExceeded
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if !events[0].IsLoading() {
		t.Errorf("first event: got %v, want Loading", events[0])
	}
	if !events[1].IsError() || events[1].Err().Kind != KindTimeout {
		t.Errorf("second event: got %v, want Error(timeout)", events[1])
	}
}

func TestProgress_RerunsOperationPerRange(t *testing.T) {
	calls := 0
	seq := Progress(context.Background(), func(context.Context) (int, error) {
		calls++
		return calls, nil
	})
	for range seq {
	}
	for range seq {
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
}

func TestProgress_BreakAfterLoadingSkipsOperation(t *testing.T) {
	called := false
	for range Progress(context.Background(), func(context.Context) (int, error) {
		called = true
		return 0, nil
	}) {
		break
	}
	if called {
		t.Error("operation must not run when the consumer stops after Loading")
	}
}

func TestProgress_CancellationEndsAfterLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := collect(ctx, func(ctx context.Context) (int, error) {
		cancel()
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if len(events) != 1 || !events[0].IsLoading() {
		t.Errorf("got %v, want only Loading", events)
	}
}

func TestProgress_ErrorIsClassified(t *testing.T) {
	events := collect(context.Background(), func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	last := events[len(events)-1]
	if last.Err() == nil || last.Err().Kind != KindUnknown || last.Err().Message != "boom" {
		t.Errorf("got %v, want Error(unknown: boom)", last)
	}
}
