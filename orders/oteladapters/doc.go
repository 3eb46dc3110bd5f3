// Package oteladapters connects the dependency-free orders.MetricsCollector interface to OpenTelemetry.
//
// Usage:
//
//	meter := otel.Meter("order-generator")
//	collector := oteladapters.NewMetricsCollector(meter)
//	writer, err := postgresengine.OpenPGX(ctx, connConfig, postgresengine.WithMetrics(collector))
package oteladapters
