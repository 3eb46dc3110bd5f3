package orders

import (
	"errors"
)

var (
	quantities       = []int{1, 2, 3, 4, 5}
	quantityWeights  = []int{50, 25, 15, 7, 3} // heavily biased toward single-item orders
	customerAgeRange = MaxCustomerAge - MinCustomerAge + 1
)

// Generator samples synthetic orders from a Catalog.
//
// A Generator is not safe for concurrent use because its Source is not.
type Generator struct {
	catalog    Catalog
	quantities WeightedChoice[int]
	cities     WeightedChoice[string]
	source     Source
}

// NewGenerator validates the catalog and precomputes the weight tables.
func NewGenerator(catalog Catalog, source Source) (*Generator, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	quantityChoice, err := NewWeightedChoice(quantities, quantityWeights)
	if err != nil {
		return nil, err
	}

	cityWeights := make([]int, 0, len(catalog.Cities))
	for _, city := range catalog.Cities {
		cityWeights = append(cityWeights, city.Weight)
	}

	cityChoice, err := NewWeightedChoice(catalog.CityNames(), cityWeights)
	if err != nil {
		return nil, errors.Join(ErrInvalidCityWeight, err)
	}

	return &Generator{
		catalog:    copyCatalog(catalog),
		quantities: quantityChoice,
		cities:     cityChoice,
		source:     source,
	}, nil
}

// Generate samples one order. The draw order is fixed, so seeded sources reproduce orders:
// category, product, price, quantity, city, customer age, payment method.
func (g *Generator) Generate() Order {
	category := g.catalog.Categories[g.source.IntN(len(g.catalog.Categories))]
	product := category.Products[g.source.IntN(len(category.Products))]

	priceRange := category.PriceRange
	price := RoundPrice(priceRange.Min + g.source.Float64()*(priceRange.Max-priceRange.Min))

	quantity := g.quantities.Pick(g.source)
	city := g.cities.Pick(g.source)
	customerAge := MinCustomerAge + g.source.IntN(customerAgeRange)
	paymentMethod := g.catalog.PaymentMethods[g.source.IntN(len(g.catalog.PaymentMethods))]

	return Order{
		ProductName:   product,
		Category:      category.Name,
		Price:         price,
		Quantity:      quantity,
		City:          city,
		CustomerAge:   customerAge,
		PaymentMethod: paymentMethod,
	}
}

// Catalog returns the catalog the Generator samples from.
func (g *Generator) Catalog() Catalog {
	return copyCatalog(g.catalog)
}

func copyCatalog(c Catalog) Catalog {
	categories := make([]Category, len(c.Categories))
	for i, category := range c.Categories {
		products := make([]string, len(category.Products))
		copy(products, category.Products)
		categories[i] = Category{Name: category.Name, Products: products, PriceRange: category.PriceRange}
	}

	cities := make([]City, len(c.Cities))
	copy(cities, c.Cities)

	paymentMethods := make([]string, len(c.PaymentMethods))
	copy(paymentMethods, c.PaymentMethods)

	return Catalog{Categories: categories, Cities: cities, PaymentMethods: paymentMethods}
}
