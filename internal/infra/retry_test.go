package infra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), testConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	wantErr := errors.New("persistent")
	err := WithRetry(context.Background(), testConfig(), func() error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := WithRetry(ctx, testConfig(), func() error {
		attempts++
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestWithRetryShouldRetryFilter(t *testing.T) {
	permanent := errors.New("bad request")
	cfg := testConfig()
	cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, permanent) }

	attempts := 0
	err := WithRetry(context.Background(), cfg, func() error {
		attempts++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("err = %v, want %v", err, permanent)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 404} {
		if IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}
