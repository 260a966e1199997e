package cache

import (
	"context"
	"errors"
	"time"
)

// Redis dial retry policy. A server that is still starting usually answers
// within a second.
const (
	dialAttempts = 3
	dialDelay    = 200 * time.Millisecond
)

// retry runs fn up to attempts times, doubling delay after each failure.
// Context errors are returned immediately, as is ctx.Err() if ctx ends while
// waiting. Otherwise the last error from fn is returned.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
