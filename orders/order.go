package orders

import (
	"github.com/shopspring/decimal"
)

const (
	// MinCustomerAge is the youngest generated customer age (inclusive).
	MinCustomerAge = 18

	// MaxCustomerAge is the oldest generated customer age (inclusive).
	MaxCustomerAge = 70
)

// Order is one generated order record, persisted as one row.
//
// Orders are created fresh by the Generator, never mutated, and not retained after they were written.
type Order struct {
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	City          string          `json:"city"`
	CustomerAge   int             `json:"customer_age"`
	PaymentMethod string          `json:"payment_method"`
}

// Total returns the exact order value, unit price times quantity.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// RoundPrice rounds a sampled price to two decimal places.
//
// Rounding is half away from zero, applied to the shortest decimal representation of f:
// 1.005 becomes 1.01 and 1.004999 becomes 1.00.
func RoundPrice(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(pricePlaces)
}
