package helper

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/synthetic-orders-go/orders"
)

// GivenUniqueTableName returns a table name that no other test run uses.
func GivenUniqueTableName(t testing.TB) string {
	t.Helper()

	return "orders_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// GivenSeededGenerator returns a Generator over the default catalog with a fixed seed.
func GivenSeededGenerator(t testing.TB, seed uint64) *orders.Generator {
	t.Helper()

	generator, err := orders.NewGenerator(orders.DefaultCatalog(), orders.NewSeededSource(seed))
	require.NoError(t, err, "error in arranging test data")

	return generator
}

// FixtureOrder returns a valid order with a price that needs no rounding.
func FixtureOrder() orders.Order {
	return orders.Order{
		ProductName:   "Jacket",
		Category:      "Clothing",
		Price:         decimal.RequireFromString("7750.00"),
		Quantity:      2,
		City:          "Moscow",
		CustomerAge:   30,
		PaymentMethod: "E-Wallet",
	}
}
