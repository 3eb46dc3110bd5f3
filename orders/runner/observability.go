package runner

import (
	"context"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

const (
	// OrdersGeneratedMetric counts persisted and reported orders.
	OrdersGeneratedMetric = "orders_generated_total"

	// OrderAmountMetric records the total amount of the last persisted order.
	OrderAmountMetric = "orders_last_amount"

	// RunsMetric counts finished runs by stop reason.
	RunsMetric = "order_generator_runs_total"

	labelCategory = "category"
	labelCity     = "city"
	labelReason   = "reason"
)

func (r *Runner) recordOrder(ctx context.Context, order orders.Order) {
	if r.metricsCollector == nil {
		return
	}

	countLabels := map[string]string{labelCategory: order.Category, labelCity: order.City}
	amountLabels := map[string]string{labelCategory: order.Category}
	amount := order.Total().InexactFloat64()

	if contextualCollector, ok := r.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, OrdersGeneratedMetric, countLabels)
		contextualCollector.RecordValueContext(ctx, OrderAmountMetric, amount, amountLabels)
	} else {
		r.metricsCollector.IncrementCounter(OrdersGeneratedMetric, countLabels)
		r.metricsCollector.RecordValue(OrderAmountMetric, amount, amountLabels)
	}
}

func (r *Runner) recordRun(ctx context.Context, reason StopReason) {
	if r.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelReason: string(reason)}

	if contextualCollector, ok := r.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, RunsMetric, labels)
	} else {
		r.metricsCollector.IncrementCounter(RunsMetric, labels)
	}
}

func (r *Runner) logDebug(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.DebugContext(ctx, msg, args...)
	} else if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Runner) logInfo(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.InfoContext(ctx, msg, args...)
	} else if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Runner) logWarn(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.WarnContext(ctx, msg, args...)
	} else if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Runner) logError(ctx context.Context, msg string, args ...any) {
	if r.contextualLogger != nil {
		r.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}
