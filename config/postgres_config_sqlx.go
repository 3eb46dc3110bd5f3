package config

import (
	_ "github.com/lib/pq" // postgres driver
)

// SQLXDriverName is the database/sql driver registered by lib/pq.
const SQLXDriverName = "postgres"

// PostgresSQLXDSN returns the DSN for sqlx with the lib/pq driver, with connect_timeout applied.
func PostgresSQLXDSN(p Postgres) string {
	return p.DSN() + "&connect_timeout=5"
}
