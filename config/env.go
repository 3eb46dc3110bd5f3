package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDBHost      = "DB_HOST"
	EnvDBPort      = "DB_PORT"
	EnvDBName      = "DB_NAME"
	EnvDBUser      = "DB_USER"
	EnvDBPassword  = "DB_PASSWORD"
	EnvDBSSLMode   = "DB_SSLMODE"
	EnvAdapterType = "ADAPTER_TYPE"

	defaultDBPort    = 5432
	defaultDBSSLMode = "disable"
	defaultEnvFile   = ".env"
)

var (
	// ErrMissingEnvironment is returned when required variables are not set.
	ErrMissingEnvironment = errors.New("missing required environment variable")

	// ErrInvalidPort is returned when DB_PORT is not a valid TCP port.
	ErrInvalidPort = errors.New("invalid database port")

	// ErrLoadingEnvFileFailed is returned when an existing env file cannot be parsed.
	ErrLoadingEnvFileFailed = errors.New("loading env file failed")
)

// Postgres holds the connection settings of the target database.
type Postgres struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads the database settings from the environment.
//
// The given env files (default: .env) are loaded first if they exist; variables already set in the
// process environment win over file values. All missing required variables are reported together.
func Load(envFiles ...string) (Postgres, error) {
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Postgres{}, errors.Join(ErrLoadingEnvFileFailed, fmt.Errorf("%s: %w", envFile, err))
		}
	}

	return FromEnvironment()
}

// FromEnvironment reads the database settings from the process environment only.
func FromEnvironment() (Postgres, error) {
	var errs []error

	required := func(name string) string {
		value, ok := os.LookupEnv(name)
		if !ok || strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnvironment, name))
		}

		return value
	}

	cfg := Postgres{
		Host:     required(EnvDBHost),
		Port:     defaultDBPort,
		Name:     required(EnvDBName),
		User:     required(EnvDBUser),
		Password: required(EnvDBPassword),
		SSLMode:  defaultDBSSLMode,
	}

	if rawPort, ok := os.LookupEnv(EnvDBPort); ok && rawPort != "" {
		port, err := strconv.Atoi(rawPort)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPort, rawPort))
		} else {
			cfg.Port = port
		}
	}

	if sslMode, ok := os.LookupEnv(EnvDBSSLMode); ok && sslMode != "" {
		cfg.SSLMode = sslMode
	}

	if len(errs) > 0 {
		return Postgres{}, errors.Join(errs...)
	}

	return cfg, nil
}

// AdapterTypeFromEnv returns the lower-cased ADAPTER_TYPE or the given fallback if it is unset.
func AdapterTypeFromEnv(fallback string) string {
	if adapterType := strings.ToLower(strings.TrimSpace(os.Getenv(EnvAdapterType))); adapterType != "" {
		return adapterType
	}

	return fallback
}
