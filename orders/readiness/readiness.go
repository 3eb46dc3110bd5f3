package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

const (
	defaultMaxAttempts = 30
	defaultDelay       = 2 * time.Second

	logMsgProbeFailed       = "store not ready yet"
	logMsgStoreReady        = "store is ready"
	logMsgAttemptsExhausted = "store did not become ready"
	logAttrAttempt          = "attempt"
	logAttrMaxAttempts      = "max_attempts"
	logAttrError            = "error"

	// ProbeAttemptsMetric counts every probe attempt, labeled with its outcome.
	ProbeAttemptsMetric = "readiness_probe_attempts_total"

	// WaitDurationMetric records the total time spent in WaitForReady.
	WaitDurationMetric = "readiness_wait_duration_seconds"

	labelStatus   = "status"
	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	// ErrNilProbe is returned when WaitForReady is called without a probe.
	ErrNilProbe = errors.New("probe must not be nil")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeDelay is returned when the delay between attempts is negative.
	ErrNegativeDelay = errors.New("delay must not be negative")

	// ErrNilSleeper is returned when a nil sleeper is provided to WithSleeper.
	ErrNilSleeper = errors.New("sleeper must not be nil")
)

// Probe performs one lightweight connect-and-close round trip against the store.
type Probe func(ctx context.Context) error

// Observer is notified about probe outcomes, e.g. to print operator-facing progress.
type Observer interface {
	ProbeFailed(attempt, maxAttempts int, err error)
	ProbeSucceeded(attempt int)
}

type gateConfig struct {
	maxAttempts      int
	delay            time.Duration
	sleep            orders.Sleeper
	observer         Observer
	logger           orders.Logger
	contextualLogger orders.ContextualLogger
	metricsCollector orders.MetricsCollector
}

// WaitForReady probes the store up to maxAttempts times, sleeping the fixed delay between attempts.
//
// It returns true the moment a probe succeeds, without further attempts, and false once all attempts failed.
// No delay is slept after the final failed attempt.
// An error is returned only for invalid options or when ctx is done before the store became ready,
// which includes a failed final attempt that ran while ctx was being cancelled.
func WaitForReady(ctx context.Context, probe Probe, options ...Option) (bool, error) {
	if probe == nil {
		return false, ErrNilProbe
	}

	config := &gateConfig{
		maxAttempts: defaultMaxAttempts,
		delay:       defaultDelay,
		sleep:       orders.SleepWithContext,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return false, err
		}
	}

	start := time.Now()

	for attempt := 1; attempt <= config.maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}

		probeErr := probe(ctx)
		if probeErr == nil {
			config.recordAttempt(ctx, statusSuccess)
			config.recordWaitDuration(ctx, time.Since(start), statusSuccess)
			config.logInfo(ctx, logMsgStoreReady, logAttrAttempt, attempt)
			if config.observer != nil {
				config.observer.ProbeSucceeded(attempt)
			}

			return true, nil
		}

		config.recordAttempt(ctx, statusFailure)
		config.logWarn(ctx, logMsgProbeFailed,
			logAttrAttempt, attempt,
			logAttrMaxAttempts, config.maxAttempts,
			logAttrError, probeErr.Error())
		if config.observer != nil {
			config.observer.ProbeFailed(attempt, config.maxAttempts, probeErr)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}

		if attempt == config.maxAttempts {
			break
		}

		if sleepErr := config.sleep(ctx, config.delay); sleepErr != nil {
			return false, sleepErr
		}
	}

	config.recordWaitDuration(ctx, time.Since(start), statusFailure)
	config.logError(ctx, logMsgAttemptsExhausted, logAttrMaxAttempts, config.maxAttempts)

	return false, nil
}

func (c *gateConfig) recordAttempt(ctx context.Context, status string) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelStatus: status}

	if contextualCollector, ok := c.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, ProbeAttemptsMetric, labels)
	} else {
		c.metricsCollector.IncrementCounter(ProbeAttemptsMetric, labels)
	}
}

func (c *gateConfig) recordWaitDuration(ctx context.Context, duration time.Duration, status string) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelStatus: status}

	if contextualCollector, ok := c.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, WaitDurationMetric, duration, labels)
	} else {
		c.metricsCollector.RecordDuration(WaitDurationMetric, duration, labels)
	}
}

func (c *gateConfig) logInfo(ctx context.Context, msg string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.InfoContext(ctx, msg, args...)
	} else if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *gateConfig) logWarn(ctx context.Context, msg string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.WarnContext(ctx, msg, args...)
	} else if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *gateConfig) logError(ctx context.Context, msg string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}

// Option configures the gate using the functional options pattern.
type Option func(*gateConfig) error

// WithMaxAttempts sets the maximum number of probe attempts.
func WithMaxAttempts(attempts int) Option {
	return func(config *gateConfig) error {
		if attempts <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxAttempts, attempts)
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithDelay sets the fixed delay between two attempts. Zero disables waiting.
func WithDelay(delay time.Duration) Option {
	return func(config *gateConfig) error {
		if delay < 0 {
			return ErrNegativeDelay
		}

		config.delay = delay

		return nil
	}
}

// WithSleeper replaces the timer-based sleep, mainly for tests.
func WithSleeper(sleeper orders.Sleeper) Option {
	return func(config *gateConfig) error {
		if sleeper == nil {
			return ErrNilSleeper
		}

		config.sleep = sleeper

		return nil
	}
}

// WithObserver sets an observer that is notified about every probe outcome.
func WithObserver(observer Observer) Option {
	return func(config *gateConfig) error {
		config.observer = observer
		return nil
	}
}

// WithLogger sets the logger. Info: readiness; Warn: failed attempts; Error: exhausted attempts.
func WithLogger(logger orders.Logger) Option {
	return func(config *gateConfig) error {
		config.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over WithLogger.
func WithContextualLogger(logger orders.ContextualLogger) Option {
	return func(config *gateConfig) error {
		config.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for probe instrumentation.
func WithMetrics(collector orders.MetricsCollector) Option {
	return func(config *gateConfig) error {
		config.metricsCollector = collector
		return nil
	}
}
