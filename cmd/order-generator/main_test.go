package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/synthetic-orders-go/config"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/report"
)

func Test_ParseFlags_Defaults(t *testing.T) {
	// arrange
	t.Setenv(config.EnvAdapterType, "")

	// act
	cfg, err := parseFlags(nil, &bytes.Buffer{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, adapterPGX, cfg.Adapter)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 30, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Zero(t, cfg.MaxOrders)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, "orders", cfg.TableName)
	assert.Equal(t, formatText, cfg.Format)
	assert.Equal(t, "₽", cfg.Currency)
	assert.False(t, cfg.ObservabilityEnabled)
}

func Test_ParseFlags_AdapterFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvAdapterType, "sqlx")

	cfg, err := parseFlags(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, adapterSQLX, cfg.Adapter)
}

func Test_ParseFlags_Overrides(t *testing.T) {
	args := []string{
		"-adapter", "sqlx",
		"-interval", "250ms",
		"-max-retries", "5",
		"-retry-delay", "0s",
		"-max-orders", "100",
		"-seed", "42",
		"-format", "json",
		"-log-level", "debug",
		"-observability-enabled",
	}

	cfg, err := parseFlags(args, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, adapterSQLX, cfg.Adapter)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Zero(t, cfg.RetryDelay)
	assert.Equal(t, 100, cfg.MaxOrders)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, formatJSON, cfg.Format)
	assert.Equal(t, "DEBUG", cfg.LogLevel.String())
	assert.True(t, cfg.ObservabilityEnabled)
}

func Test_ParseFlags_InvalidValues(t *testing.T) {
	_, err := parseFlags([]string{"-adapter", "gorm", "-format", "xml", "-log-level", "loud"}, &bytes.Buffer{})

	assert.ErrorIs(t, err, errInvalidFlag)
	assert.Contains(t, err.Error(), "-adapter")
	assert.Contains(t, err.Error(), "-format")
	assert.Contains(t, err.Error(), "-log-level")
}

func Test_Run_ExitCodes(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		assert.Equal(t, exitOK, run([]string{"-h"}, &bytes.Buffer{}, &bytes.Buffer{}))
	})

	t.Run("invalid flag", func(t *testing.T) {
		assert.Equal(t, exitFailure, run([]string{"-format", "xml"}, &bytes.Buffer{}, &bytes.Buffer{}))
	})

	t.Run("missing database environment", func(t *testing.T) {
		for _, name := range []string{config.EnvDBHost, config.EnvDBName, config.EnvDBUser, config.EnvDBPassword} {
			t.Setenv(name, "")
		}
		var stderr bytes.Buffer
		envFile := filepath.Join(t.TempDir(), "missing.env")

		code := run([]string{"-env-file", envFile}, &bytes.Buffer{}, &stderr)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stderr.String(), config.EnvDBHost)
	})
}

func Test_NewGenerator_SeedIsReproducible(t *testing.T) {
	first, err := newGenerator(Config{Seed: 99})
	require.NoError(t, err)
	second, err := newGenerator(Config{Seed: 99})
	require.NoError(t, err)

	for range 50 {
		assert.Equal(t, first.Generate(), second.Generate())
	}
}

func Test_NewGenerator_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
		"categories": [{"name": "Toys", "products": ["Kite"], "price_range": {"min": 10, "max": 20}}],
		"cities": [{"name": "Tver", "weight": 1}],
		"payment_methods": ["Card"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	generator, err := newGenerator(Config{Seed: 1, CatalogPath: path})
	require.NoError(t, err)

	order := generator.Generate()
	assert.Equal(t, "Kite", order.ProductName)
	assert.Equal(t, "Tver", order.City)
}

func Test_NewReporter_SelectsFormat(t *testing.T) {
	assert.IsType(t, &report.TextReporter{}, newReporter(Config{Format: formatText}, &bytes.Buffer{}))
	assert.IsType(t, &report.JSONReporter{}, newReporter(Config{Format: formatJSON}, &bytes.Buffer{}))
}

func Test_NewStoreAccess_BuildsProbeAndOpenerForBothAdapters(t *testing.T) {
	dbConfig := config.Postgres{Host: "localhost", Port: 5432, Name: "shop", User: "u", Password: "p", SSLMode: "disable"}

	for _, adapter := range []string{adapterPGX, adapterSQLX} {
		probe, opener, err := newStoreAccess(adapter, dbConfig, nil)

		require.NoError(t, err)
		assert.NotNil(t, probe)
		assert.NotNil(t, opener)
	}
}
