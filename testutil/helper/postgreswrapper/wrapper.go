package postgreswrapper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/synthetic-orders-go/config"
	"github.com/AntonStoeckl/synthetic-orders-go/orders"
	"github.com/AntonStoeckl/synthetic-orders-go/orders/postgresengine"
)

// Adapter type constants, selected by ADAPTER_TYPE.
const (
	typePGX  = "pgx"
	typeSQLX = "sqlx"

	reachabilityTimeout = 3 * time.Second

	createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
		id             BIGSERIAL PRIMARY KEY,
		product_name   TEXT NOT NULL,
		category       TEXT NOT NULL,
		price          NUMERIC(12, 2) NOT NULL,
		quantity       INTEGER NOT NULL,
		city           TEXT NOT NULL,
		customer_age   INTEGER NOT NULL,
		payment_method TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	dropTableSQL   = `DROP TABLE IF EXISTS %s`
	countOrdersSQL = `SELECT count(*) FROM %s`
	lastOrderSQL   = `SELECT product_name, category, price::text AS price, quantity, city, customer_age, payment_method
		FROM %s ORDER BY id DESC LIMIT 1`
)

// Wrapper abstracts over the pgx and sqlx adapters in integration tests.
type Wrapper interface {
	GetOrderWriter() postgresengine.OrderWriter
	CountOrders(t testing.TB) int
	LastOrder(t testing.TB) orders.Order
	Close(t testing.TB)
}

type storedOrder struct {
	ProductName   string `db:"product_name"`
	Category      string `db:"category"`
	Price         string `db:"price"`
	Quantity      int    `db:"quantity"`
	City          string `db:"city"`
	CustomerAge   int    `db:"customer_age"`
	PaymentMethod string `db:"payment_method"`
}

func (o storedOrder) toOrder(t testing.TB) orders.Order {
	price, err := decimal.NewFromString(o.Price)
	require.NoError(t, err, "error reading stored price")

	return orders.Order{
		ProductName:   o.ProductName,
		Category:      o.Category,
		Price:         price,
		Quantity:      o.Quantity,
		City:          o.City,
		CustomerAge:   o.CustomerAge,
		PaymentMethod: o.PaymentMethod,
	}
}

// PGXWrapper wraps the single-connection pgx setup.
type PGXWrapper struct {
	conn      *pgx.Conn
	writer    postgresengine.OrderWriter
	tableName string
}

func (w *PGXWrapper) GetOrderWriter() postgresengine.OrderWriter {
	return w.writer
}

func (w *PGXWrapper) CountOrders(t testing.TB) int {
	var count int
	err := w.conn.QueryRow(context.Background(), fmt.Sprintf(countOrdersSQL, w.tableName)).Scan(&count)
	require.NoError(t, err, "error counting orders")

	return count
}

func (w *PGXWrapper) LastOrder(t testing.TB) orders.Order {
	var o storedOrder
	err := w.conn.QueryRow(context.Background(), fmt.Sprintf(lastOrderSQL, w.tableName)).
		Scan(&o.ProductName, &o.Category, &o.Price, &o.Quantity, &o.City, &o.CustomerAge, &o.PaymentMethod)
	require.NoError(t, err, "error reading last order")

	return o.toOrder(t)
}

// Close drops the test table and closes the connection through the writer.
func (w *PGXWrapper) Close(t testing.TB) {
	_, err := w.conn.Exec(context.Background(), fmt.Sprintf(dropTableSQL, w.tableName))
	require.NoError(t, err, "error dropping the test table")
	require.NoError(t, w.writer.Close(context.Background()))
}

// SQLXWrapper wraps the sqlx setup with lib/pq.
type SQLXWrapper struct {
	db        *sqlx.DB
	writer    postgresengine.OrderWriter
	tableName string
}

func (w *SQLXWrapper) GetOrderWriter() postgresengine.OrderWriter {
	return w.writer
}

func (w *SQLXWrapper) CountOrders(t testing.TB) int {
	var count int
	err := w.db.GetContext(context.Background(), &count, fmt.Sprintf(countOrdersSQL, w.tableName))
	require.NoError(t, err, "error counting orders")

	return count
}

func (w *SQLXWrapper) LastOrder(t testing.TB) orders.Order {
	var o storedOrder
	err := w.db.GetContext(context.Background(), &o, fmt.Sprintf(lastOrderSQL, w.tableName))
	require.NoError(t, err, "error reading last order")

	return o.toOrder(t)
}

// Close drops the test table and closes the connection through the writer.
func (w *SQLXWrapper) Close(t testing.TB) {
	_, err := w.db.ExecContext(context.Background(), fmt.Sprintf(dropTableSQL, w.tableName))
	require.NoError(t, err, "error dropping the test table")
	require.NoError(t, w.writer.Close(context.Background()))
}

// TestDatabase returns the test database settings, skipping the test if they are not configured
// or the database is not reachable.
func TestDatabase(t testing.TB) config.Postgres {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Skipf("test database not configured: %v", err)
	}

	connConfig, err := config.PostgresPGXConnConfig(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), reachabilityTimeout)
	defer cancel()

	if probeErr := postgresengine.PGXProbe(connConfig)(ctx); probeErr != nil {
		t.Skipf("test database not reachable: %v", probeErr)
	}

	return cfg
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE with a fresh orders table.
// Options may override the table the writer inserts into, the wrapper still manages tableName.
func CreateWrapperWithTestConfig(t testing.TB, tableName string, options ...postgresengine.Option) Wrapper {
	t.Helper()

	cfg := TestDatabase(t)
	ctx := context.Background()
	options = append([]postgresengine.Option{postgresengine.WithTableName(tableName)}, options...)

	switch adapterType := config.AdapterTypeFromEnv(typePGX); adapterType {
	case typePGX:
		connConfig, err := config.PostgresPGXConnConfig(cfg)
		require.NoError(t, err)

		conn, err := pgx.ConnectConfig(ctx, connConfig)
		require.NoError(t, err, "error connecting to DB in test setup")

		_, err = conn.Exec(ctx, fmt.Sprintf(createTableSQL, tableName))
		require.NoError(t, err, "error creating the test table")

		writer, err := postgresengine.NewOrderWriterFromPGXConn(conn, options...)
		require.NoError(t, err)

		return &PGXWrapper{conn: conn, writer: writer, tableName: tableName}

	case typeSQLX:
		db, err := sqlx.ConnectContext(ctx, config.SQLXDriverName, config.PostgresSQLXDSN(cfg))
		require.NoError(t, err, "error connecting to DB in test setup")
		db.SetMaxOpenConns(1)

		_, err = db.ExecContext(ctx, fmt.Sprintf(createTableSQL, tableName))
		require.NoError(t, err, "error creating the test table")

		writer, err := postgresengine.NewOrderWriterFromSQLX(db, options...)
		require.NoError(t, err)

		return &SQLXWrapper{db: db, writer: writer, tableName: tableName}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}
}
