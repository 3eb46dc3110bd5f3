package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/postgresengine/internal/adapters"
)

const (
	defaultOrdersTableName       = "orders"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBeginFailed            = "failed to begin transaction"
	logMsgDBExecFailed           = "database execution failed during order insert"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgCommitFailed           = "failed to commit order transaction"
	logMsgRollbackFailed         = "failed to roll back order transaction"
	logMsgCloseFailed            = "failed to close database connection"
	logMsgOrderInserted          = "order inserted"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "order writer operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrDurationMS            = "duration_ms"
	logAttrCategory              = "category"
	logAttrRowsAffected          = "rows_affected"
	logActionInsert              = "insert"
	colProductName               = "product_name"
	colCategory                  = "category"
	colPrice                     = "price"
	colQuantity                  = "quantity"
	colCity                      = "city"
	colCustomerAge               = "customer_age"
	colPaymentMethod             = "payment_method"
	dialectPostgres              = "postgres"
	priceDecimalPlaces           = 2
)

type (
	sqlQueryString = string
	queryArgs      = []any
)

// OrderWriter persists generated orders into PostgreSQL, one row per transaction.
//
// An OrderWriter owns exactly one connection and is not safe for concurrent use.
type OrderWriter struct {
	db               adapters.DBConn
	tableName        string
	logger           orders.Logger
	contextualLogger orders.ContextualLogger
	metricsCollector orders.MetricsCollector
}

// NewOrderWriterFromPGXConn creates a new OrderWriter on top of a single pgx connection.
func NewOrderWriterFromPGXConn(conn *pgx.Conn, options ...Option) (OrderWriter, error) {
	if conn == nil {
		return OrderWriter{}, orders.ErrNilDatabaseConnection
	}

	return newOrderWriter(adapters.NewPGXAdapter(conn), options...)
}

// NewOrderWriterFromSQLX creates a new OrderWriter using a sqlx.DB.
// The handle should be restricted to a single open connection, as OpenSQLX does.
func NewOrderWriterFromSQLX(db *sqlx.DB, options ...Option) (OrderWriter, error) {
	if db == nil {
		return OrderWriter{}, orders.ErrNilDatabaseConnection
	}

	return newOrderWriter(adapters.NewSQLXAdapter(db), options...)
}

// OpenPGX connects with the given pgx config and returns a writer owning that connection.
func OpenPGX(ctx context.Context, connConfig *pgx.ConnConfig, options ...Option) (OrderWriter, error) {
	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return OrderWriter{}, errors.Join(orders.ErrConnectingFailed, err)
	}

	writer, err := NewOrderWriterFromPGXConn(conn, options...)
	if err != nil {
		_ = conn.Close(ctx) // the option error is the one worth reporting

		return OrderWriter{}, err
	}

	return writer, nil
}

// OpenSQLX connects via sqlx with a single open connection and returns a writer owning it.
func OpenSQLX(ctx context.Context, driverName, dsn string, options ...Option) (OrderWriter, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return OrderWriter{}, errors.Join(orders.ErrConnectingFailed, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	writer, err := NewOrderWriterFromSQLX(db, options...)
	if err != nil {
		_ = db.Close() // the option error is the one worth reporting

		return OrderWriter{}, err
	}

	return writer, nil
}

func newOrderWriter(db adapters.DBConn, options ...Option) (OrderWriter, error) {
	writer := OrderWriter{
		db:        db,
		tableName: defaultOrdersTableName,
	}

	for _, option := range options {
		if err := option(&writer); err != nil {
			return OrderWriter{}, err
		}
	}

	return writer, nil
}

// TableName returns the table the writer inserts into.
func (w OrderWriter) TableName() string {
	return w.tableName
}

// Insert writes one order as one row and commits immediately.
//
// Begin, insert and commit failures are returned joined with orders.ErrBeginningTransactionFailed,
// orders.ErrInsertingOrderFailed or orders.ErrCommittingOrderFailed. The transaction is rolled back
// on every failure before commit. There is no retry.
func (w OrderWriter) Insert(ctx context.Context, order orders.Order) error {
	sqlQuery, args, buildErr := w.buildInsertQuery(order)
	if buildErr != nil {
		w.logError(ctx, logMsgBuildInsertQueryFailed, buildErr)
		return buildErr
	}

	start := time.Now()

	tx, beginErr := w.db.Begin(ctx)
	if beginErr != nil {
		w.logError(ctx, logMsgBeginFailed, beginErr)
		w.recordErrorMetrics(ctx, errorTypeBegin)

		return errors.Join(orders.ErrBeginningTransactionFailed, beginErr)
	}

	finished := false
	defer func() {
		if !finished {
			w.rollback(ctx, tx)
		}
	}()

	execStart := time.Now()
	result, execErr := tx.Exec(ctx, sqlQuery, args...)
	if execErr != nil {
		w.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		w.recordErrorMetrics(ctx, errorTypeExec)

		return errors.Join(orders.ErrInsertingOrderFailed, execErr)
	}

	w.logQueryWithDuration(ctx, sqlQuery, logActionInsert, time.Since(execStart))

	if err := w.validateInsertResult(ctx, result); err != nil {
		return err
	}

	// A failed commit leaves nothing to roll back.
	finished = true
	if commitErr := tx.Commit(ctx); commitErr != nil {
		w.logError(ctx, logMsgCommitFailed, commitErr)
		w.recordErrorMetrics(ctx, errorTypeCommit)

		return errors.Join(orders.ErrCommittingOrderFailed, commitErr)
	}

	duration := time.Since(start)
	w.recordInsertMetrics(ctx, order, duration)
	w.logOperation(ctx,
		logMsgOrderInserted,
		logAttrCategory, order.Category,
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

// validateInsertResult checks that exactly one row was written.
func (w OrderWriter) validateInsertResult(ctx context.Context, result adapters.DBResult) error {
	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		w.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		w.recordErrorMetrics(ctx, errorTypeRowsAffected)

		return errors.Join(orders.ErrInsertingOrderFailed, rowsAffectedErr)
	}

	if rowsAffected != 1 {
		err := fmt.Errorf("%w: %d", orders.ErrUnexpectedRowsAffected, rowsAffected)
		w.logError(ctx, logMsgDBExecFailed, err, logAttrRowsAffected, rowsAffected)
		w.recordErrorMetrics(ctx, errorTypeRowsAffected)

		return errors.Join(orders.ErrInsertingOrderFailed, err)
	}

	return nil
}

// rollback rolls back with a context that survives cancellation of the caller's context.
func (w OrderWriter) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
		w.logWarn(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
	}
}

// Ping checks that the owned connection is alive.
func (w OrderWriter) Ping(ctx context.Context) error {
	return w.db.Ping(ctx)
}

// Close closes the owned connection.
func (w OrderWriter) Close(ctx context.Context) error {
	if err := w.db.Close(ctx); err != nil {
		w.logError(ctx, logMsgCloseFailed, err)

		return errors.Join(orders.ErrClosingConnectionFailed, err)
	}

	return nil
}

func (w OrderWriter) buildInsertQuery(order orders.Order) (sqlQueryString, queryArgs, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(w.tableName).
		Prepared(true).
		Cols(colProductName, colCategory, colPrice, colQuantity, colCity, colCustomerAge, colPaymentMethod).
		Vals(goqu.Vals{
			order.ProductName,
			order.Category,
			order.Price.StringFixed(priceDecimalPlaces),
			order.Quantity,
			order.City,
			order.CustomerAge,
			order.PaymentMethod,
		})

	sqlQuery, args, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(orders.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}
