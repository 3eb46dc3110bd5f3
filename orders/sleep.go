package orders

import (
	"context"
	"time"
)

// Sleeper blocks for the given duration or until the context is done.
// It returns the context error if the context finished first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext is the default Sleeper backed by a real timer.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
