package postgresengine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

// PGXProbe returns a connect-ping-close probe for the readiness gate using pgx.
// connConfig must have been created by pgx.ParseConfig.
func PGXProbe(connConfig *pgx.ConnConfig) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		conn, err := pgx.ConnectConfig(ctx, connConfig)
		if err != nil {
			return errors.Join(orders.ErrConnectingFailed, err)
		}

		pingErr := conn.Ping(ctx)
		closeErr := conn.Close(ctx)

		return errors.Join(pingErr, closeErr)
	}
}

// SQLXProbe returns a connect-ping-close probe for the readiness gate using sqlx.
func SQLXProbe(driverName, dsn string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		db, err := sqlx.ConnectContext(ctx, driverName, dsn)
		if err != nil {
			return errors.Join(orders.ErrConnectingFailed, err)
		}

		return db.Close()
	}
}
