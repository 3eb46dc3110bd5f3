package orders

// DefaultCatalog returns the built-in demo catalog.
// Each call returns a fresh copy, so callers cannot alter the defaults of other callers.
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{
				Name:       "Electronics",
				Products:   []string{"Smartphone", "Laptop", "Headphones", "Tablet", "Smartwatch", "TV", "Speaker"},
				PriceRange: PriceRange{Min: 5000, Max: 150000},
			},
			{
				Name:       "Clothing",
				Products:   []string{"T-Shirt", "Jeans", "Jacket", "Dress", "Sneakers", "Sweater", "Hat"},
				PriceRange: PriceRange{Min: 500, Max: 15000},
			},
			{
				Name:       "Groceries",
				Products:   []string{"Milk", "Bread", "Cheese", "Coffee", "Tea", "Chocolate", "Fruit"},
				PriceRange: PriceRange{Min: 50, Max: 2000},
			},
			{
				Name:       "Books",
				Products:   []string{"Novel", "Textbook", "Detective Story", "Science Fiction", "Biography", "Comic", "Dictionary"},
				PriceRange: PriceRange{Min: 200, Max: 3000},
			},
			{
				Name:       "Sports",
				Products:   []string{"Dumbbells", "Yoga Mat", "Ball", "Bicycle", "Jump Rope", "Racket", "Football Boots"},
				PriceRange: PriceRange{Min: 300, Max: 50000},
			},
		},
		// Bigger cities are picked more often.
		Cities: []City{
			{Name: "Moscow", Weight: 25},
			{Name: "Saint Petersburg", Weight: 15},
			{Name: "Novosibirsk", Weight: 8},
			{Name: "Yekaterinburg", Weight: 7},
			{Name: "Kazan", Weight: 6},
			{Name: "Nizhny Novgorod", Weight: 5},
			{Name: "Chelyabinsk", Weight: 5},
			{Name: "Samara", Weight: 5},
			{Name: "Rostov-on-Don", Weight: 5},
			{Name: "Ufa", Weight: 4},
			{Name: "Krasnoyarsk", Weight: 4},
			{Name: "Voronezh", Weight: 4},
			{Name: "Perm", Weight: 3},
			{Name: "Volgograd", Weight: 3},
			{Name: "Krasnodar", Weight: 3},
		},
		PaymentMethods: []string{"Card", "Cash", "E-Wallet"},
	}
}
