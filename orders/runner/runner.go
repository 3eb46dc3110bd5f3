package runner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/readiness"
)

const (
	defaultInterval = time.Second

	logMsgStarting         = "order generator starting"
	logMsgGateInterrupted  = "interrupted while waiting for the store"
	logMsgUnreachable      = "store unreachable, aborting"
	logMsgOpenFailed       = "failed to open order writer"
	logMsgOpenInterrupted  = "interrupted while opening order writer"
	logMsgConnected        = "order writer connected"
	logMsgWriteFailed      = "failed to write order, stopping"
	logMsgStopped          = "order generation stopped"
	logMsgCloseFailed      = "failed to close order writer"
	logMsgOrderReported    = "order reported"
	logAttrError           = "error"
	logAttrOrdersGenerated = "orders_generated"
	logAttrReason          = "reason"
	logAttrInterval        = "interval"
	logAttrMaxOrders       = "max_orders"
	logAttrSequence        = "sequence"
	logAttrCategory        = "category"
)

var (
	// ErrStoreUnreachable is returned when the readiness gate gave up.
	ErrStoreUnreachable = errors.New("store did not become reachable")

	// ErrOpeningWriterFailed is returned when the writer could not be opened after the gate passed.
	ErrOpeningWriterFailed = errors.New("opening order writer failed")

	// ErrWritingOrderFailed is returned when persisting an order failed; the run stops at that point.
	ErrWritingOrderFailed = errors.New("writing order failed")

	// ErrNilProbe is returned when a Runner is created without a probe.
	ErrNilProbe = errors.New("probe must not be nil")

	// ErrNilOpener is returned when a Runner is created without an opener.
	ErrNilOpener = errors.New("opener must not be nil")

	// ErrNilOrderSource is returned when a Runner is created without an order source.
	ErrNilOrderSource = errors.New("order source must not be nil")

	// ErrNilReporter is returned when a Runner is created without a reporter.
	ErrNilReporter = errors.New("reporter must not be nil")

	// ErrNegativeInterval is returned when the pacing interval is negative.
	ErrNegativeInterval = errors.New("interval must not be negative")

	// ErrNegativeMaxOrders is returned when the order limit is negative.
	ErrNegativeMaxOrders = errors.New("max orders must not be negative")

	// ErrNilSleeper is returned when a nil sleeper is provided to WithSleeper.
	ErrNilSleeper = errors.New("sleeper must not be nil")
)

// OrderSource produces the next order. *orders.Generator satisfies it.
type OrderSource interface {
	Generate() orders.Order
}

// Writer persists orders over one connection. postgresengine.OrderWriter satisfies it.
type Writer interface {
	Insert(ctx context.Context, order orders.Order) error
	Close(ctx context.Context) error
}

// Opener opens the single Writer used for the whole run.
type Opener func(ctx context.Context) (Writer, error)

// Reporter receives operator-facing progress.
// It is also the readiness observer, so waiting attempts are reported through it.
type Reporter interface {
	readiness.Observer
	ReportStarting()
	ReportUnreachable()
	ReportConnected()
	ReportOrder(sequence int, order orders.Order)
	ReportStopped(ordersGenerated int)
}

// Summary describes a finished run.
type Summary struct {
	RunID           uuid.UUID
	OrdersGenerated int
	FinalState      State
	StopReason      StopReason
}

// Runner runs one order generation session. A Runner must not be run concurrently.
type Runner struct {
	probe            readiness.Probe
	open             Opener
	source           OrderSource
	reporter         Reporter
	runID            uuid.UUID
	interval         time.Duration
	maxOrders        int
	sleep            orders.Sleeper
	readinessOptions []readiness.Option
	logger           orders.Logger
	contextualLogger orders.ContextualLogger
	metricsCollector orders.MetricsCollector
}

// New creates a Runner. A random run ID is assigned unless WithRunID is given.
func New(probe readiness.Probe, open Opener, source OrderSource, reporter Reporter, options ...Option) (*Runner, error) {
	switch {
	case probe == nil:
		return nil, ErrNilProbe
	case open == nil:
		return nil, ErrNilOpener
	case source == nil:
		return nil, ErrNilOrderSource
	case reporter == nil:
		return nil, ErrNilReporter
	}

	r := &Runner{
		probe:    probe,
		open:     open,
		source:   source,
		reporter: reporter,
		runID:    uuid.New(),
		interval: defaultInterval,
		sleep:    orders.SleepWithContext,
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RunID returns the identifier of this run.
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// Run executes the whole lifecycle and blocks until it ends.
//
// Cancellation of ctx is the regular way to stop: it is checked at every iteration boundary and during
// pacing, and leads to a nil error once the final count was reported. A gate or open failure observed
// with ctx already done also counts as an interrupt, not as an unreachable store or a failed open.
// An insert already in flight is allowed to finish. ErrStoreUnreachable, ErrOpeningWriterFailed and
// ErrWritingOrderFailed report the other ways a run can end.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: r.runID, FinalState: StateStarting}

	r.reporter.ReportStarting()
	r.logInfo(ctx, logMsgStarting,
		logAttrInterval, r.interval.String(),
		logAttrMaxOrders, r.maxOrders)

	ready, gateErr := readiness.WaitForReady(ctx, r.probe, r.gateOptions()...)
	switch {
	case ctx.Err() != nil:
		r.logInfo(ctx, logMsgGateInterrupted)
		r.recordRun(ctx, StopReasonInterrupted)

		return r.finish(summary, StateAborted, StopReasonInterrupted), nil

	case gateErr != nil:
		r.recordRun(ctx, StopReasonInvalidConfig)

		return r.finish(summary, StateAborted, StopReasonInvalidConfig), gateErr

	case !ready:
		r.reporter.ReportUnreachable()
		r.logError(ctx, logMsgUnreachable)
		r.recordRun(ctx, StopReasonUnreachable)

		return r.finish(summary, StateAborted, StopReasonUnreachable), ErrStoreUnreachable
	}

	writer, openErr := r.open(ctx)
	if openErr != nil && ctx.Err() != nil {
		r.logInfo(ctx, logMsgOpenInterrupted, logAttrError, openErr.Error())
		r.recordRun(ctx, StopReasonInterrupted)

		return r.finish(summary, StateAborted, StopReasonInterrupted), nil
	}

	if openErr != nil {
		r.logError(ctx, logMsgOpenFailed, logAttrError, openErr.Error())
		r.recordRun(ctx, StopReasonOpenFailed)

		return r.finish(summary, StateAborted, StopReasonOpenFailed), errors.Join(ErrOpeningWriterFailed, openErr)
	}

	summary.FinalState = StateConnected
	r.reporter.ReportConnected()
	r.logInfo(ctx, logMsgConnected)

	runErr := r.runConnected(ctx, writer, &summary)

	r.recordRun(ctx, summary.StopReason)
	r.logInfo(ctx, logMsgStopped,
		logAttrOrdersGenerated, summary.OrdersGenerated,
		logAttrReason, string(summary.StopReason))

	return summary, runErr
}

// runConnected owns the writer: whatever happens inside, it is closed exactly once on the way out.
func (r *Runner) runConnected(ctx context.Context, writer Writer, summary *Summary) error {
	defer func() {
		summary.FinalState = StateStopping
		if closeErr := writer.Close(context.WithoutCancel(ctx)); closeErr != nil {
			r.logWarn(ctx, logMsgCloseFailed, logAttrError, closeErr.Error())
		}
		summary.FinalState = StateClosed
	}()

	summary.FinalState = StateRunning

	for {
		if ctx.Err() != nil {
			return r.stop(summary, StopReasonInterrupted)
		}

		order := r.source.Generate()

		if insertErr := writer.Insert(context.WithoutCancel(ctx), order); insertErr != nil {
			summary.StopReason = StopReasonWriteFailed
			r.logError(ctx, logMsgWriteFailed,
				logAttrError, insertErr.Error(),
				logAttrSequence, summary.OrdersGenerated+1)

			return errors.Join(ErrWritingOrderFailed, insertErr)
		}

		summary.OrdersGenerated++
		r.recordOrder(ctx, order)
		r.reporter.ReportOrder(summary.OrdersGenerated, order)
		r.logDebug(ctx, logMsgOrderReported,
			logAttrSequence, summary.OrdersGenerated,
			logAttrCategory, order.Category)

		if r.maxOrders > 0 && summary.OrdersGenerated >= r.maxOrders {
			return r.stop(summary, StopReasonLimitReached)
		}

		if sleepErr := r.sleep(ctx, r.interval); sleepErr != nil {
			return r.stop(summary, StopReasonInterrupted)
		}
	}
}

func (r *Runner) stop(summary *Summary, reason StopReason) error {
	summary.StopReason = reason
	r.reporter.ReportStopped(summary.OrdersGenerated)

	return nil
}

func (r *Runner) finish(summary Summary, state State, reason StopReason) Summary {
	summary.FinalState = state
	summary.StopReason = reason

	return summary
}

// gateOptions forwards the runner's observability to the gate; explicit readiness options win.
func (r *Runner) gateOptions() []readiness.Option {
	options := []readiness.Option{readiness.WithObserver(r.reporter)}

	if r.logger != nil {
		options = append(options, readiness.WithLogger(r.logger))
	}
	if r.contextualLogger != nil {
		options = append(options, readiness.WithContextualLogger(r.contextualLogger))
	}
	if r.metricsCollector != nil {
		options = append(options, readiness.WithMetrics(r.metricsCollector))
	}

	return append(options, r.readinessOptions...)
}
