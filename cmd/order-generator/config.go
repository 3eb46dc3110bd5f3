package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/synthetic-orders-go/config"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/report"
)

const (
	adapterPGX  = "pgx"
	adapterSQLX = "sqlx"
	formatText  = "text"
	formatJSON  = "json"

	defaultInterval       = time.Second
	defaultMaxRetries     = 30
	defaultRetryDelay     = 2 * time.Second
	defaultTableName      = "orders"
	defaultLogLevel       = "info"
	defaultExportInterval = 10 * time.Second
)

var errInvalidFlag = errors.New("invalid flag value")

// Config holds the command line configuration.
type Config struct {
	Adapter              string
	Interval             time.Duration
	MaxRetries           int
	RetryDelay           time.Duration
	MaxOrders            int
	Seed                 uint64
	CatalogPath          string
	TableName            string
	Format               string
	Currency             string
	LogLevel             slog.Level
	ObservabilityEnabled bool
	MetricsInterval      time.Duration
	EnvFile              string
}

func parseFlags(args []string, output io.Writer) (Config, error) {
	flags := flag.NewFlagSet("order-generator", flag.ContinueOnError)
	flags.SetOutput(output)

	var (
		adapter         = flags.String("adapter", config.AdapterTypeFromEnv(adapterPGX), "Database adapter: pgx or sqlx (default from ADAPTER_TYPE)")
		interval        = flags.Duration("interval", defaultInterval, "Pause after each persisted order")
		maxRetries      = flags.Int("max-retries", defaultMaxRetries, "Connection attempts before giving up")
		retryDelay      = flags.Duration("retry-delay", defaultRetryDelay, "Fixed pause between connection attempts")
		maxOrders       = flags.Int("max-orders", 0, "Stop after this many orders (0 = run until interrupted)")
		seed            = flags.Uint64("seed", 0, "Random seed for reproducible runs (0 = random)")
		catalogPath     = flags.String("catalog", "", "Path to a JSON catalog replacing the built-in one")
		tableName       = flags.String("table", defaultTableName, "Table the orders are inserted into")
		format          = flags.String("format", formatText, "Progress output format: text or json")
		currency        = flags.String("currency", report.DefaultCurrencySymbol, "Currency symbol for text output")
		logLevel        = flags.String("log-level", defaultLogLevel, "Log level: debug, info, warn or error")
		observability   = flags.Bool("observability-enabled", false, "Export OpenTelemetry metrics to stderr")
		metricsInterval = flags.Duration("metrics-interval", defaultExportInterval, "Metrics export interval")
		envFile         = flags.String("env-file", ".env", "Optional env file with DB_* settings")
	)

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Adapter:              *adapter,
		Interval:             *interval,
		MaxRetries:           *maxRetries,
		RetryDelay:           *retryDelay,
		MaxOrders:            *maxOrders,
		Seed:                 *seed,
		CatalogPath:          *catalogPath,
		TableName:            *tableName,
		Format:               *format,
		Currency:             *currency,
		ObservabilityEnabled: *observability,
		MetricsInterval:      *metricsInterval,
		EnvFile:              *envFile,
	}

	var errs []error

	if cfg.Adapter != adapterPGX && cfg.Adapter != adapterSQLX {
		errs = append(errs, fmt.Errorf("%w: -adapter %q, expected %s or %s", errInvalidFlag, cfg.Adapter, adapterPGX, adapterSQLX))
	}

	if cfg.Format != formatText && cfg.Format != formatJSON {
		errs = append(errs, fmt.Errorf("%w: -format %q, expected %s or %s", errInvalidFlag, cfg.Format, formatText, formatJSON))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%w: -log-level %q", errInvalidFlag, *logLevel))
	}

	if cfg.MetricsInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: -metrics-interval must be positive", errInvalidFlag))
	}

	return cfg, errors.Join(errs...)
}
