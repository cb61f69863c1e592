// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BackoffDuration returns the exponential delay for a zero-based attempt
// number, capped at max.
func BackoffDuration(attempt int, base, max time.Duration) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

// Backoff sleeps for the exponential delay of the given attempt, honoring
// context cancellation.
func Backoff(ctx context.Context, attempt int, base, max time.Duration) error {
	return SleepWithContext(ctx, BackoffDuration(attempt, base, max))
}
