package postgresengine

import (
	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

// Option defines a functional option for configuring OrderWriter.
type Option func(*OrderWriter) error

// WithTableName sets the table name for the OrderWriter.
func WithTableName(tableName string) Option {
	return func(w *OrderWriter) error {
		if tableName == "" {
			return orders.ErrEmptyOrdersTableName
		}

		w.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the OrderWriter.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: inserted orders with durations (production-safe)
// Warn level: non-critical issues like rollback failures
// Error level: failures that cause an insert to fail.
func WithLogger(logger orders.Logger) Option {
	return func(w *OrderWriter) error {
		w.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the OrderWriter.
// It takes precedence over WithLogger.
func WithContextualLogger(logger orders.ContextualLogger) Option {
	return func(w *OrderWriter) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the OrderWriter.
// The collector receives insert durations, inserted order counts and database errors.
func WithMetrics(collector orders.MetricsCollector) Option {
	return func(w *OrderWriter) error {
		w.metricsCollector = collector
		return nil
	}
}
