package orders

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const pricePlaces = 2

// PriceRange is an inclusive range of unit prices. Min == Max is allowed.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Category groups products that share a price range.
type Category struct {
	Name       string     `json:"name"`
	Products   []string   `json:"products"`
	PriceRange PriceRange `json:"price_range"`
}

// City is a delivery city with a relative selection weight (its "population").
type City struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Catalog is the static reference data orders are sampled from.
//
// A Catalog is loaded once at process start and treated as read-only afterwards,
// so it can be shared without synchronization.
type Catalog struct {
	Categories     []Category `json:"categories"`
	Cities         []City     `json:"cities"`
	PaymentMethods []string   `json:"payment_methods"`
}

// Validate checks all Catalog invariants and returns every violation joined into one error.
func (c Catalog) Validate() error {
	var errs []error

	if len(c.Categories) == 0 {
		errs = append(errs, ErrEmptyCatalog)
	}

	for i, category := range c.Categories {
		if err := category.validate(); err != nil {
			errs = append(errs, fmt.Errorf("category %d (%q): %w", i, category.Name, err))
		}
	}

	if len(c.Cities) == 0 {
		errs = append(errs, ErrNoCities)
	}

	for _, city := range c.Cities {
		if city.Weight <= 0 {
			errs = append(errs, fmt.Errorf("city %q has weight %d: %w", city.Name, city.Weight, ErrInvalidCityWeight))
		}
	}

	if len(c.PaymentMethods) == 0 {
		errs = append(errs, ErrNoPaymentMethods)
	}

	return errors.Join(errs...)
}

func (c Category) validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrEmptyCategoryName)
	}

	if len(c.Products) == 0 {
		errs = append(errs, ErrCategoryWithoutProducts)
	}

	if c.PriceRange.Min < 0 || c.PriceRange.Min > c.PriceRange.Max {
		errs = append(errs, ErrInvalidPriceRange)
	}

	// Whole-cent bounds keep a rounded sample inside the range.
	if !isWholeCents(c.PriceRange.Min) || !isWholeCents(c.PriceRange.Max) {
		errs = append(errs, ErrPriceRangeNotInCents)
	}

	return errors.Join(errs...)
}

func isWholeCents(f float64) bool {
	d := decimal.NewFromFloat(f)
	return d.Equal(d.Round(pricePlaces))
}

// CategoryNames returns the category names in catalog order.
func (c Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		names = append(names, category.Name)
	}

	return names
}

// CityNames returns the city names in catalog order.
func (c Catalog) CityNames() []string {
	names := make([]string, 0, len(c.Cities))
	for _, city := range c.Cities {
		names = append(names, city.Name)
	}

	return names
}

// FindCategory returns the category with the given name.
func (c Catalog) FindCategory(name string) (Category, bool) {
	for _, category := range c.Categories {
		if category.Name == name {
			return category, true
		}
	}

	return Category{}, false
}
