// Package postgresengine provides the PostgreSQL persistence writer for generated orders.
//
// It supports two database access layers (a single pgx.Conn, or sqlx.DB on top of lib/pq)
// through internal adapters. Every order is written as one parameterized INSERT inside its own
// transaction, committed immediately. There are no retries at this level.
//
// Usage examples:
//
//	// pgx, one long-lived connection
//	writer, _ := postgresengine.OpenPGX(ctx, connConfig, postgresengine.WithLogger(logger))
//	defer writer.Close(ctx)
//	err := writer.Insert(ctx, order)
//
//	// sqlx with lib/pq
//	writer, _ := postgresengine.OpenSQLX(ctx, "postgres", dsn, postgresengine.WithTableName("demo_orders"))
//
// The package also provides connect-and-close probes for the readiness gate.
package postgresengine
