package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

const (
	// InsertDurationMetric records the duration of successful inserts including commit.
	InsertDurationMetric = "orders_insert_duration_seconds"

	// OrdersInsertedMetric counts committed orders.
	OrdersInsertedMetric = "orders_inserted_total"

	// DatabaseErrorsMetric counts failed inserts by failure stage.
	DatabaseErrorsMetric = "orders_database_errors_total"

	labelOperation        = "operation"
	labelCategory         = "category"
	labelPaymentMethod    = "payment_method"
	labelStatus           = "status"
	labelErrorType        = "error_type"
	operationInsert       = "insert"
	statusSuccess         = "success"
	errorTypeBegin        = "begin"
	errorTypeExec         = "exec"
	errorTypeRowsAffected = "rows_affected"
	errorTypeCommit       = "commit"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (w OrderWriter) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if w.contextualLogger != nil {
		w.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	} else if w.logger != nil {
		w.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (w OrderWriter) logOperation(ctx context.Context, action string, args ...any) {
	if w.contextualLogger != nil {
		w.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	} else if w.logger != nil {
		w.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (w OrderWriter) logWarn(ctx context.Context, message string, args ...any) {
	if w.contextualLogger != nil {
		w.contextualLogger.WarnContext(ctx, message, args...)
	} else if w.logger != nil {
		w.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (w OrderWriter) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if w.contextualLogger != nil {
		w.contextualLogger.ErrorContext(ctx, message, allArgs...)
	} else if w.logger != nil {
		w.logger.Error(message, allArgs...)
	}
}

// recordInsertMetrics records the duration and the count of a committed order.
func (w OrderWriter) recordInsertMetrics(ctx context.Context, order orders.Order, duration time.Duration) {
	if w.metricsCollector == nil {
		return
	}

	durationLabels := map[string]string{
		labelOperation: operationInsert,
		labelStatus:    statusSuccess,
	}
	countLabels := map[string]string{
		labelCategory:      order.Category,
		labelPaymentMethod: order.PaymentMethod,
	}

	if contextualCollector, ok := w.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, InsertDurationMetric, duration, durationLabels)
		contextualCollector.IncrementCounterContext(ctx, OrdersInsertedMetric, countLabels)
	} else {
		w.metricsCollector.RecordDuration(InsertDurationMetric, duration, durationLabels)
		w.metricsCollector.IncrementCounter(OrdersInsertedMetric, countLabels)
	}
}

// recordErrorMetrics records a database error if a metrics collector is configured.
func (w OrderWriter) recordErrorMetrics(ctx context.Context, errorType string) {
	if w.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operationInsert,
		labelErrorType: errorType,
	}

	if contextualCollector, ok := w.metricsCollector.(orders.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, DatabaseErrorsMetric, labels)
	} else {
		w.metricsCollector.IncrementCounter(DatabaseErrorsMetric, labels)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
