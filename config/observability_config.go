package config

import (
	"context"
	"errors"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ServiceName identifies the order generator in telemetry.
const ServiceName = "order-generator"

// ObservabilityProviders holds the OpenTelemetry providers of the order generator.
type ObservabilityProviders struct {
	MeterProvider *metric.MeterProvider
	Resource      *resource.Resource
}

// NewObservabilityConfig creates a MeterProvider that periodically exports metrics as JSON to out
// and installs it as the global provider.
func NewObservabilityConfig(ctx context.Context, out io.Writer, exportInterval time.Duration, serviceVersion string) (*ObservabilityProviders, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(out),
		stdoutmetric.WithoutTimestamps(),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(exportInterval))),
		metric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	return &ObservabilityProviders{
		MeterProvider: meterProvider,
		Resource:      res,
	}, nil
}

// Shutdown flushes pending metrics and shuts the providers down.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return errors.Join(p.MeterProvider.ForceFlush(ctx), p.MeterProvider.Shutdown(ctx))
}
