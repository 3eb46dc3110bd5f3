package adapters

import "context"

// DBConn defines the connection operations needed by the order writer.
type DBConn interface {
	Begin(ctx context.Context) (DBTx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// DBTx defines the operations of one open transaction.
type DBTx interface {
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
