package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || result != "ok" {
		t.Fatalf("got (%q, %v), want (ok, nil)", result, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastConfig(2), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary error")
		}
		return "ok", nil
	})
	if err != nil || result != "ok" {
		t.Fatalf("got (%q, %v), want (ok, nil)", result, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_ExhaustsRetriesAndReturnsLastResult(t *testing.T) {
	calls := 0
	testErr := errors.New("persistent error")
	result, err := Retry(context.Background(), fastConfig(2), func() (int, error) {
		calls++
		return calls, testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("expected testErr, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d calls", calls)
	}
	if result != 3 {
		t.Errorf("expected last result 3, got %d", result)
	}
}

func TestRetry_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	calls := 0
	_, _ = Retry(context.Background(), fastConfig(0), func() (string, error) {
		calls++
		return "", errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 10, InitialBackoff: 100 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := Retry(ctx, cfg, func() (string, error) {
		calls++
		return "", errors.New("error")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if calls >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", calls)
	}
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Retry(ctx, fastConfig(2), func() (string, error) {
		calls++
		return "", nil
	})
	if !errors.Is(err, context.Canceled) || calls != 0 {
		t.Errorf("got err=%v calls=%d, want context.Canceled and 0 calls", err, calls)
	}
}

func TestRetry_RetryIfFilter(t *testing.T) {
	retryable := errors.New("retryable")
	permanent := errors.New("permanent")
	cfg := fastConfig(2)
	cfg.RetryIf = func(err error) bool { return errors.Is(err, retryable) }

	calls := 0
	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", retryable
	})
	if calls != 3 {
		t.Errorf("expected 3 calls for retryable error, got %d", calls)
	}

	calls = 0
	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", permanent
	})
	if calls != 1 || !errors.Is(err, permanent) {
		t.Errorf("got calls=%d err=%v, want 1 call and permanent", calls, err)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var retries []int
	cfg := fastConfig(2)
	cfg.OnRetry = func(retry int, err error, backoff time.Duration) {
		retries = append(retries, retry)
	}
	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", errors.New("error")
	})
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("expected retries [1 2], got %v", retries)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !DefaultRetryIf(errors.New("boom")) {
		t.Error("plain errors should be retried")
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
	}
	tests := []struct {
		retry int
		want  time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
	}
	for _, tt := range tests {
		if got := calculateBackoff(tt.retry, cfg); got != tt.want {
			t.Errorf("retry %d: got %v, want %v", tt.retry, got, tt.want)
		}
	}
}

func TestCalculateBackoff_JitterStaysInRange(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.5,
	}
	for i := 0; i < 50; i++ {
		got := calculateBackoff(1, cfg)
		if got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("jittered backoff %v outside [50ms, 150ms]", got)
		}
	}
}
