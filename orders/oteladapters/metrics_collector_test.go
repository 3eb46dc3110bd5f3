package oteladapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/oteladapters"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/runner"
	"github.com/AntonStoeckl/synthetic-orders-go/testutil/helper"
)

func givenCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "Failed to collect metrics")

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	collector, reader := givenCollector()
	labels := map[string]string{"operation": "insert", "status": "success"}

	// act
	collector.RecordDuration("orders_insert_duration_seconds", 150*time.Millisecond, labels)

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "orders_insert_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(
		attribute.String("operation", "insert"),
		attribute.String("status", "success"),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	collector, reader := givenCollector()
	labels := map[string]string{"category": "Books"}

	// act
	collector.IncrementCounter("orders_inserted_total", labels)
	collector.IncrementCounter("orders_inserted_total", labels)
	collector.IncrementCounterContext(context.Background(), "orders_inserted_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "orders_inserted_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
	assert.True(t, counter.IsMonotonic)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	collector, reader := givenCollector()

	// act
	collector.RecordValue("orders_last_amount", 120.5, map[string]string{"category": "Sports"})
	collector.RecordValueContext(context.Background(), "orders_last_amount", 99.25, map[string]string{"category": "Sports"})

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "orders_last_amount")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 99.25, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_NilLabels(t *testing.T) {
	collector, reader := givenCollector()

	collector.IncrementCounter("readiness_probe_attempts_total", nil)
	collector.RecordDurationContext(context.Background(), "readiness_wait_duration_seconds", time.Second, nil)

	resourceMetrics := collect(t, reader)
	counter := findCounterMetric(t, resourceMetrics, "readiness_probe_attempts_total")
	histogram := findHistogramMetric(t, resourceMetrics, "readiness_wait_duration_seconds")
	assert.Equal(t, 0, counter.DataPoints[0].Attributes.Len())
	assert.Equal(t, 0, histogram.DataPoints[0].Attributes.Len())
}

func Test_MetricsCollector_InstrumentCreationErrors(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(&errorInjectingMeter{Meter: provider.Meter("test")})

	// act + assert
	assert.NotPanics(t, func() {
		collector.RecordDuration("error_histogram", 100*time.Millisecond, nil)
		collector.IncrementCounter("error_counter", nil)
		collector.RecordValue("error_gauge", 42.0, nil)
	})
}

func Test_MetricsCollector_WiredIntoRunner(t *testing.T) {
	// arrange
	collector, reader := givenCollector()
	generator, err := orders.NewGenerator(orders.DefaultCatalog(), orders.NewSeededSource(3))
	require.NoError(t, err)

	r, err := runner.New(
		func(_ context.Context) error { return nil },
		func(_ context.Context) (runner.Writer, error) { return nopWriter{}, nil },
		generator,
		nopReporter{},
		runner.WithSleeper(helper.NewSleeperSpy().Sleep),
		runner.WithMaxOrders(5),
		runner.WithMetrics(collector),
	)
	require.NoError(t, err)

	// act
	_, err = r.Run(context.Background())

	// assert
	require.NoError(t, err)

	counter := findCounterMetric(t, collect(t, reader), runner.OrdersGeneratedMetric)
	var total int64
	for _, dataPoint := range counter.DataPoints {
		total += dataPoint.Value
	}
	assert.Equal(t, int64(5), total)
}

type nopWriter struct{}

func (nopWriter) Insert(_ context.Context, _ orders.Order) error { return nil }
func (nopWriter) Close(_ context.Context) error                  { return nil }

type nopReporter struct{}

func (nopReporter) ProbeFailed(_, _ int, _ error)     {}
func (nopReporter) ProbeSucceeded(_ int)              {}
func (nopReporter) ReportStarting()                   {}
func (nopReporter) ReportUnreachable()                {}
func (nopReporter) ReportConnected()                  {}
func (nopReporter) ReportOrder(_ int, _ orders.Order) {}
func (nopReporter) ReportStopped(_ int)               {}

// errorInjectingMeter wraps a real meter but fails instruments whose name starts with "error_".
type errorInjectingMeter struct {
	metric.Meter
}

func (m *errorInjectingMeter) Float64Histogram(name string, options ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	if name == "error_histogram" {
		return nil, errors.New("histogram creation failed")
	}
	return m.Meter.Float64Histogram(name, options...)
}

func (m *errorInjectingMeter) Int64Counter(name string, options ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == "error_counter" {
		return nil, errors.New("counter creation failed")
	}
	return m.Meter.Int64Counter(name, options...)
}

func (m *errorInjectingMeter) Float64Gauge(name string, options ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	if name == "error_gauge" {
		return nil, errors.New("gauge creation failed")
	}
	return m.Meter.Float64Gauge(name, options...)
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Histogram[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if h, ok := m.Data.(metricdata.Histogram[float64]); ok && m.Name == name {
				return &h
			}
		}
	}
	t.Fatalf("Histogram metric %s not found", name)
	return nil
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Sum[int64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if c, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == name {
				return &c
			}
		}
	}
	t.Fatalf("Counter metric %s not found", name)
	return nil
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Gauge[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if g, ok := m.Data.(metricdata.Gauge[float64]); ok && m.Name == name {
				return &g
			}
		}
	}
	t.Fatalf("Gauge metric %s not found", name)
	return nil
}
