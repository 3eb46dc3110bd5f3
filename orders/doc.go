// Package orders provides the core types for fabricating synthetic e-commerce orders.
//
// This package defines the static reference data (Catalog), the generated entity (Order),
// the weighted random Generator that samples orders from a Catalog, and the small,
// dependency-free observability interfaces shared by the engine and the run loop.
//
// The Generator is purely functional given its random Source: it never mutates the
// Catalog and never fails once constructed.
//
// Common usage pattern:
//
//	generator, err := orders.NewGenerator(orders.DefaultCatalog(), orders.NewSeededSource(42))
//	if err != nil {
//		// the catalog violates an invariant
//	}
//
//	order := generator.Generate()
//	fmt.Println(order.ProductName, order.Price.StringFixed(2), order.Total().StringFixed(2))
package orders
