// Package config provides database and observability configuration for the order generator.
//
// Database settings come from the environment (DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD and
// DB_SSLMODE), optionally seeded from a .env file. Factory functions turn them into a pgx connection
// config or a DSN for sqlx with the lib/pq driver.
package config
