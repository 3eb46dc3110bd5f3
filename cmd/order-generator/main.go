// Package main runs the synthetic order generator: it waits for PostgreSQL, then inserts one
// randomized order per interval until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/synthetic-orders-go/config"
	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/oteladapters"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/postgresengine"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/readiness"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/report"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/runner"
)

const (
	exitOK      = 0
	exitFailure = 1
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitFailure
	}

	runID := uuid.New()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With("run_id", runID.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsCollector, shutdown, err := setUpObservability(ctx, cfg, stderr)
	if err != nil {
		logger.Error("failed to set up observability", "error", err.Error())
		return exitFailure
	}
	defer func() {
		if shutdownErr := shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Warn("failed to shut down observability", "error", shutdownErr.Error())
		}
	}()

	r, err := buildRunner(cfg, runID, logger, metricsCollector, stdout)
	if err != nil {
		logger.Error("invalid configuration", "error", err.Error())
		return exitFailure
	}

	summary, err := r.Run(ctx)
	if err != nil {
		logger.Error("order generator failed",
			"error", err.Error(),
			"orders_generated", summary.OrdersGenerated,
			"final_state", summary.FinalState.String())

		return exitFailure
	}

	return exitOK
}

func buildRunner(cfg Config, runID uuid.UUID, logger *slog.Logger, metricsCollector orders.MetricsCollector, stdout io.Writer) (*runner.Runner, error) {
	dbConfig, err := config.Load(cfg.EnvFile)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	writerOptions := []postgresengine.Option{
		postgresengine.WithTableName(cfg.TableName),
		postgresengine.WithContextualLogger(logger),
	}
	runnerOptions := []runner.Option{
		runner.WithRunID(runID),
		runner.WithInterval(cfg.Interval),
		runner.WithMaxOrders(cfg.MaxOrders),
		runner.WithContextualLogger(logger),
		runner.WithReadinessOptions(
			readiness.WithMaxAttempts(cfg.MaxRetries),
			readiness.WithDelay(cfg.RetryDelay),
		),
	}
	if metricsCollector != nil {
		writerOptions = append(writerOptions, postgresengine.WithMetrics(metricsCollector))
		runnerOptions = append(runnerOptions, runner.WithMetrics(metricsCollector))
	}

	probe, opener, err := newStoreAccess(cfg.Adapter, dbConfig, writerOptions)
	if err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		"adapter", cfg.Adapter,
		"database", dbConfig.Redacted(),
		"table", cfg.TableName,
		"version", version)

	return runner.New(probe, opener, generator, newReporter(cfg, stdout), runnerOptions...)
}

func newGenerator(cfg Config) (*orders.Generator, error) {
	catalog := orders.DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := orders.LoadCatalogFromFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	var source orders.Source
	if cfg.Seed != 0 {
		source = orders.NewSeededSource(cfg.Seed)
	} else {
		source = orders.NewRandomSource()
	}

	return orders.NewGenerator(catalog, source)
}

func newStoreAccess(adapter string, dbConfig config.Postgres, writerOptions []postgresengine.Option) (readiness.Probe, runner.Opener, error) {
	switch adapter {
	case adapterSQLX:
		dsn := config.PostgresSQLXDSN(dbConfig)
		opener := func(ctx context.Context) (runner.Writer, error) {
			writer, err := postgresengine.OpenSQLX(ctx, config.SQLXDriverName, dsn, writerOptions...)
			if err != nil {
				return nil, err
			}

			return writer, nil
		}

		return postgresengine.SQLXProbe(config.SQLXDriverName, dsn), opener, nil

	default:
		connConfig, err := config.PostgresPGXConnConfig(dbConfig)
		if err != nil {
			return nil, nil, err
		}

		opener := func(ctx context.Context) (runner.Writer, error) {
			writer, err := postgresengine.OpenPGX(ctx, connConfig, writerOptions...)
			if err != nil {
				return nil, err
			}

			return writer, nil
		}

		return postgresengine.PGXProbe(connConfig), opener, nil
	}
}

func newReporter(cfg Config, stdout io.Writer) runner.Reporter {
	if cfg.Format == formatJSON {
		return report.NewJSONReporter(stdout)
	}

	return report.NewTextReporter(stdout, report.WithCurrencySymbol(cfg.Currency))
}

func setUpObservability(ctx context.Context, cfg Config, stderr io.Writer) (orders.MetricsCollector, func(context.Context) error, error) {
	noShutdown := func(context.Context) error { return nil }

	if !cfg.ObservabilityEnabled {
		return nil, noShutdown, nil
	}

	providers, err := config.NewObservabilityConfig(ctx, stderr, cfg.MetricsInterval, version)
	if err != nil {
		return nil, noShutdown, err
	}

	meter := providers.MeterProvider.Meter(config.ServiceName)

	return oteladapters.NewMetricsCollector(meter), providers.Shutdown, nil
}
