package runner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/readiness"
)

// Option defines a functional option for configuring a Runner.
type Option func(*Runner) error

// WithInterval sets the pause after each persisted order. Zero disables pacing.
func WithInterval(interval time.Duration) Option {
	return func(r *Runner) error {
		if interval < 0 {
			return fmt.Errorf("%w: got %s", ErrNegativeInterval, interval)
		}

		r.interval = interval

		return nil
	}
}

// WithMaxOrders stops the run after the given number of persisted orders. Zero means unbounded.
func WithMaxOrders(maxOrders int) Option {
	return func(r *Runner) error {
		if maxOrders < 0 {
			return fmt.Errorf("%w: got %d", ErrNegativeMaxOrders, maxOrders)
		}

		r.maxOrders = maxOrders

		return nil
	}
}

// WithSleeper replaces the pacing sleeper, mainly for tests.
func WithSleeper(sleeper orders.Sleeper) Option {
	return func(r *Runner) error {
		if sleeper == nil {
			return ErrNilSleeper
		}

		r.sleep = sleeper

		return nil
	}
}

// WithRunID sets the identifier of the run instead of a random one.
func WithRunID(runID uuid.UUID) Option {
	return func(r *Runner) error {
		r.runID = runID
		return nil
	}
}

// WithReadinessOptions passes options through to the readiness gate, e.g. max attempts and delay.
func WithReadinessOptions(options ...readiness.Option) Option {
	return func(r *Runner) error {
		r.readinessOptions = append(r.readinessOptions, options...)
		return nil
	}
}

// WithLogger sets the logger for the Runner and its readiness gate.
func WithLogger(logger orders.Logger) Option {
	return func(r *Runner) error {
		r.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Runner and its readiness gate.
// It takes precedence over WithLogger.
func WithContextualLogger(logger orders.ContextualLogger) Option {
	return func(r *Runner) error {
		r.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Runner and its readiness gate.
func WithMetrics(collector orders.MetricsCollector) Option {
	return func(r *Runner) error {
		r.metricsCollector = collector
		return nil
	}
}
