package orders

import (
	"errors"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// ParseCatalogJSON decodes a Catalog from JSON and validates it.
//
// Expected shape:
//
//	{
//	  "categories": [{"name": "Books", "products": ["Novel"], "price_range": {"min": 200, "max": 3000}}],
//	  "cities": [{"name": "Moscow", "weight": 25}],
//	  "payment_methods": ["Card"]
//	}
func ParseCatalogJSON(data []byte) (Catalog, error) {
	var catalog Catalog

	if err := jsoniter.ConfigFastest.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalogJSON, err)
	}

	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}

	return catalog, nil
}

// LoadCatalogFromFile reads and validates a JSON catalog file.
func LoadCatalogFromFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Join(ErrReadingCatalogFileFailed, err)
	}

	return ParseCatalogJSON(data)
}
