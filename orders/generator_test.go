package orders

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed draws so an exact order can be predicted.
type scriptedSource struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	require.NotEmpty(s.t, s.ints, "unexpected IntN draw")
	v := s.ints[0]
	s.ints = s.ints[1:]
	require.Less(s.t, v, n, "scripted IntN value out of range")

	return v
}

func (s *scriptedSource) Float64() float64 {
	require.NotEmpty(s.t, s.floats, "unexpected Float64 draw")
	v := s.floats[0]
	s.floats = s.floats[1:]

	return v
}

func Test_NewGenerator_ErrorCases(t *testing.T) {
	_, err := NewGenerator(DefaultCatalog(), nil)
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = NewGenerator(Catalog{}, NewSeededSource(1))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func Test_Generate_ScriptedDraws_ProduceSpecificOrder(t *testing.T) {
	// arrange
	source := &scriptedSource{
		t:      t,
		ints:   []int{1, 2, 12, 2},        // category Clothing, product Jacket, age 18+12, payment E-Wallet
		floats: []float64{0.5, 0.6, 0.0}, // price midpoint, quantity bucket 2, first city
	}
	generator, err := NewGenerator(DefaultCatalog(), source)
	require.NoError(t, err)

	// act
	order := generator.Generate()

	// assert
	assert.Equal(t, "Jacket", order.ProductName)
	assert.Equal(t, "Clothing", order.Category)
	assert.Equal(t, "7750.00", order.Price.StringFixed(2))
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, "Moscow", order.City)
	assert.Equal(t, 30, order.CustomerAge)
	assert.Equal(t, "E-Wallet", order.PaymentMethod)
	assert.Equal(t, "15500.00", order.Total().StringFixed(2))
	assert.Empty(t, source.ints, "all scripted IntN draws should be consumed")
	assert.Empty(t, source.floats, "all scripted Float64 draws should be consumed")
}

func Test_Generate_PriceNearUpperBound_StaysInRange(t *testing.T) {
	source := &scriptedSource{
		t:      t,
		ints:   []int{0, 0, 0, 0},
		floats: []float64{0.999999999999, 0.99, 0.999},
	}
	generator, err := NewGenerator(DefaultCatalog(), source)
	require.NoError(t, err)

	order := generator.Generate()

	assert.Equal(t, "150000.00", order.Price.StringFixed(2))
	assert.Equal(t, 5, order.Quantity)
	assert.Equal(t, "Krasnodar", order.City)
	assert.Equal(t, MinCustomerAge, order.CustomerAge)
}

func Test_Generate_SameSeed_IsReproducible(t *testing.T) {
	first, err := NewGenerator(DefaultCatalog(), NewSeededSource(42))
	require.NoError(t, err)
	second, err := NewGenerator(DefaultCatalog(), NewSeededSource(42))
	require.NoError(t, err)
	other, err := NewGenerator(DefaultCatalog(), NewSeededSource(43))
	require.NoError(t, err)

	differs := false
	for range 100 {
		a, b, c := first.Generate(), second.Generate(), other.Generate()
		assertSameOrder(t, a, b)
		if !sameOrder(a, c) {
			differs = true
		}
	}

	assert.True(t, differs, "a different seed should produce a different sequence")
}

func Test_Generate_Seed42_ProducesKnownOrders(t *testing.T) {
	// arrange
	generator, err := NewGenerator(DefaultCatalog(), NewSeededSource(42))
	require.NoError(t, err)

	expected := []Order{
		{ProductName: "Fruit", Category: "Groceries", Price: decimal.RequireFromString("1563.34"), Quantity: 1, City: "Krasnodar", CustomerAge: 68, PaymentMethod: "Card"},
		{ProductName: "Jacket", Category: "Clothing", Price: decimal.RequireFromString("2948.89"), Quantity: 1, City: "Moscow", CustomerAge: 54, PaymentMethod: "Cash"},
		{ProductName: "Jump Rope", Category: "Sports", Price: decimal.RequireFromString("21905.09"), Quantity: 3, City: "Moscow", CustomerAge: 62, PaymentMethod: "Card"},
	}

	// act + assert
	for _, want := range expected {
		assertSameOrder(t, want, generator.Generate())
	}
}

func Test_Generate_OrdersRespectCatalogInvariants(t *testing.T) {
	catalog := DefaultCatalog()
	generator, err := NewGenerator(catalog, NewSeededSource(2024))
	require.NoError(t, err)

	for range 20_000 {
		order := generator.Generate()

		category, found := catalog.FindCategory(order.Category)
		require.True(t, found, "unknown category %q", order.Category)
		assert.Contains(t, category.Products, order.ProductName)

		minPrice := decimal.NewFromFloat(category.PriceRange.Min)
		maxPrice := decimal.NewFromFloat(category.PriceRange.Max)
		assert.True(t, order.Price.GreaterThanOrEqual(minPrice), "price %s below %s", order.Price, minPrice)
		assert.True(t, order.Price.LessThanOrEqual(maxPrice), "price %s above %s", order.Price, maxPrice)
		assert.True(t, order.Price.Equal(order.Price.Round(2)), "price %s has more than 2 decimals", order.Price)

		assert.GreaterOrEqual(t, order.Quantity, 1)
		assert.LessOrEqual(t, order.Quantity, 5)
		assert.GreaterOrEqual(t, order.CustomerAge, 18)
		assert.LessOrEqual(t, order.CustomerAge, 70)
		assert.True(t, slices.Contains(catalog.CityNames(), order.City), "unknown city %q", order.City)
		assert.Contains(t, catalog.PaymentMethods, order.PaymentMethod)
	}
}

func Test_Generate_DistributionsConvergeToWeights(t *testing.T) {
	const samples = 100_000

	catalog := DefaultCatalog()
	generator, err := NewGenerator(catalog, NewSeededSource(99))
	require.NoError(t, err)

	quantityCounts := map[int]int{}
	cityCounts := map[string]int{}
	for range samples {
		order := generator.Generate()
		quantityCounts[order.Quantity]++
		cityCounts[order.City]++
	}

	expectedQuantities := map[int]float64{1: 0.50, 2: 0.25, 3: 0.15, 4: 0.07, 5: 0.03}
	for quantity, expected := range expectedQuantities {
		assert.InDelta(t, expected, float64(quantityCounts[quantity])/samples, 0.01, "quantity %d", quantity)
	}

	totalWeight := 0
	for _, city := range catalog.Cities {
		totalWeight += city.Weight
	}
	for _, city := range catalog.Cities {
		expected := float64(city.Weight) / float64(totalWeight)
		assert.InDelta(t, expected, float64(cityCounts[city.Name])/samples, 0.01, "city %s", city.Name)
	}
}

func Test_Generate_DoesNotAliasCallerCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	generator, err := NewGenerator(catalog, NewSeededSource(5))
	require.NoError(t, err)

	for i := range catalog.Categories {
		catalog.Categories[i].Name = "mutated"
	}

	assert.NotEqual(t, "mutated", generator.Generate().Category)
	assert.Equal(t, DefaultCatalog().CategoryNames(), generator.Catalog().CategoryNames())
}

func sameOrder(a, b Order) bool {
	return a.ProductName == b.ProductName &&
		a.Category == b.Category &&
		a.Price.Equal(b.Price) &&
		a.Quantity == b.Quantity &&
		a.City == b.City &&
		a.CustomerAge == b.CustomerAge &&
		a.PaymentMethod == b.PaymentMethod
}

func assertSameOrder(t *testing.T, expected, actual Order) {
	t.Helper()
	assert.True(t, sameOrder(expected, actual), "orders differ: %+v vs %+v", expected, actual)
}
