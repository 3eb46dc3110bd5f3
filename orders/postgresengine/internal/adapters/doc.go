// Package adapters provide database adapter implementations for the PostgreSQL order writer.
//
// This package implements the adapter pattern to support two PostgreSQL database libraries:
// a single pgx.Conn and sqlx.DB. Both adapters provide the same transactional surface through
// the DBConn and DBTx interfaces, so the writer works with either connection type.
package adapters
