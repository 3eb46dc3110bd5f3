package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGXAdapter implements DBConn for a single pgx.Conn.
type PGXAdapter struct {
	conn *pgx.Conn
}

// NewPGXAdapter creates a new PGX adapter.
func NewPGXAdapter(conn *pgx.Conn) *PGXAdapter {
	return &PGXAdapter{conn: conn}
}

// Begin starts a transaction with the server's default isolation level.
func (p *PGXAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxTx{tx: tx}, nil
}

// Ping checks that the connection is alive.
func (p *PGXAdapter) Ping(ctx context.Context) error {
	return p.conn.Ping(ctx)
}

// Close closes the connection.
func (p *PGXAdapter) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}

// pgxTx wraps pgx.Tx to implement the DBTx interface.
type pgxTx struct {
	tx pgx.Tx
}

// Exec executes a statement within the transaction and returns the wrapped result.
func (p *pgxTx) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	tag, err := p.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &pgxResult{tag: tag}, nil
}

// Commit commits the transaction.
func (p *pgxTx) Commit(ctx context.Context) error {
	return p.tx.Commit(ctx)
}

// Rollback rolls the transaction back.
func (p *pgxTx) Rollback(ctx context.Context) error {
	return p.tx.Rollback(ctx)
}

// pgxResult wraps pgconn.CommandTag to implement the DBResult interface.
type pgxResult struct {
	tag pgconn.CommandTag
}

// RowsAffected returns the number of rows affected by the command.
func (p *pgxResult) RowsAffected() (int64, error) {
	return p.tag.RowsAffected(), nil
}
