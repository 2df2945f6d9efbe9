package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimpleRetry_Success(t *testing.T) {
	retry := NewSimpleRetry(3, 10*time.Millisecond)

	attempts := 0
	err := retry.Execute(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &LookupError{Source: SourceVolume, Kind: KindTransient, Status: 503}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}

func TestSimpleRetry_MaxRetriesExceeded(t *testing.T) {
	retry := NewSimpleRetry(2, 10*time.Millisecond)

	attempts := 0
	err := retry.Execute(context.Background(), func() error {
		attempts++
		return errors.New("connection reset by peer")
	})

	if err == nil {
		t.Error("Expected error, got nil")
	}

	if attempts != 3 { // 1 initial + 2 retries
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestSimpleRetry_ZeroRetriesRunsOnce(t *testing.T) {
	retry := NewSimpleRetry(0, time.Millisecond)

	attempts := 0
	_ = retry.Execute(context.Background(), func() error {
		attempts++
		return errors.New("timeout")
	})

	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestSimpleRetry_NonRetryableError(t *testing.T) {
	cases := map[string]error{
		"unauthorized": errors.New("401 unauthorized"),
		"rate limited": &LookupError{Source: SourceDocuments, Kind: KindRateLimited, Status: 429},
		"malformed":    &LookupError{Source: SourceVolume, Kind: KindMalformed},
		"unavailable":  unavailable(SourceSuggestion),
	}

	for name, failure := range cases {
		t.Run(name, func(t *testing.T) {
			retry := NewSimpleRetry(3, 10*time.Millisecond)

			attempts := 0
			err := retry.Execute(context.Background(), func() error {
				attempts++
				return failure
			})

			if !errors.Is(err, failure) {
				t.Errorf("Expected %v, got %v", failure, err)
			}
			if attempts != 1 {
				t.Errorf("Expected 1 attempt, got %d", attempts)
			}
		})
	}
}

func TestSimpleRetry_ContextCancellation(t *testing.T) {
	retry := NewSimpleRetry(3, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := retry.Execute(ctx, func() error {
		return errors.New("some error")
	})

	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
