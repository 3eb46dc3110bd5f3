package config

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// PostgresPGXConnConfig creates a pgx.ConnConfig for a single connection to the target database.
func PostgresPGXConnConfig(p Postgres) (*pgx.ConnConfig, error) {
	const defaultConnectTimeout = time.Second * 5

	connConfig, err := pgx.ParseConfig(p.DSN())
	if err != nil {
		return nil, err
	}

	connConfig.ConnectTimeout = defaultConnectTimeout

	return connConfig, nil
}
