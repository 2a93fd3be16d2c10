package retry

import (
	"context"
	"fmt"
	"time"
)

// BackoffFunc returns the delay to wait after the given 1-based attempt.
type BackoffFunc func(attempt int) time.Duration

// Exponential doubles the delay with each attempt: unit, 2*unit, 4*unit, ...
func Exponential(unit time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return unit << uint(attempt-1)
	}
}

// Error is returned when all attempts are exhausted.
type Error struct {
	Attempts int
	LastErr  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *Error) Unwrap() error {
	return e.LastErr
}

// Do invokes fn up to maxAttempts times, sleeping backoff(attempt) between
// attempts (no sleep after the final one). Returns nil on the first success,
// a *Error wrapping the last failure otherwise. Context cancellation aborts
// the wait and surfaces ctx.Err() as the last error.
func Do(ctx context.Context, maxAttempts int, backoff BackoffFunc, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return &Error{Attempts: attempt, LastErr: ctx.Err()}
		}
	}

	return &Error{Attempts: maxAttempts, LastErr: lastErr}
}
