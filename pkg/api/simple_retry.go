package api

import (
	"context"
	"time"
)

// SimpleRetry provides basic retry logic with exponential backoff
type SimpleRetry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

// NewSimpleRetry creates a simple retry mechanism. maxRetries of 0 runs fn once.
func NewSimpleRetry(maxRetries int, retryDelay time.Duration) *SimpleRetry {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &SimpleRetry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

// Execute runs fn until it succeeds, returns a non-retryable error, or the
// retry budget is spent.
func (sr *SimpleRetry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= sr.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == sr.maxRetries {
			break
		}

		if !sr.isRetryable(err) {
			return err
		}

		delay := sr.delayFor(attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (sr *SimpleRetry) delayFor(attempt int) time.Duration {
	delay := float64(sr.retryDelay)
	for i := 0; i < attempt; i++ {
		delay *= sr.backoffMultiplier
	}
	return time.Duration(delay)
}

// isRetryable retries transient failures only: rate limiting is left to the
// pacer and auth or payload errors will not change on a second attempt.
func (sr *SimpleRetry) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindTransient
}
