package orders

import (
	"errors"
)

var (
	// ErrNilSource is returned when a Generator is constructed without a random Source.
	ErrNilSource = errors.New("random source must not be nil")

	// ErrEmptyCatalog is returned when a Catalog has no categories.
	ErrEmptyCatalog = errors.New("catalog must contain at least one category")

	// ErrEmptyCategoryName is returned when a Category has no name.
	ErrEmptyCategoryName = errors.New("category name must not be empty")

	// ErrCategoryWithoutProducts is returned when a Category has an empty product list.
	ErrCategoryWithoutProducts = errors.New("category must contain at least one product")

	// ErrInvalidPriceRange is returned when a price range is negative or has Min > Max.
	ErrInvalidPriceRange = errors.New("price range must satisfy 0 <= min <= max")

	// ErrPriceRangeNotInCents is returned when a price range bound has more than two decimal places.
	ErrPriceRangeNotInCents = errors.New("price range bounds must be whole cents")

	// ErrNoCities is returned when a Catalog has no cities.
	ErrNoCities = errors.New("catalog must contain at least one city")

	// ErrInvalidCityWeight is returned when a City has a weight <= 0.
	ErrInvalidCityWeight = errors.New("city weight must be positive")

	// ErrNoPaymentMethods is returned when a Catalog has no payment methods.
	ErrNoPaymentMethods = errors.New("catalog must contain at least one payment method")

	// ErrInvalidWeights is returned when a weighted choice is built from unusable weights.
	ErrInvalidWeights = errors.New("weights must be positive and match the number of items")

	// ErrReadingCatalogFileFailed is returned when a catalog file cannot be read.
	ErrReadingCatalogFileFailed = errors.New("reading catalog file failed")

	// ErrInvalidCatalogJSON is returned when a catalog file is not valid catalog JSON.
	ErrInvalidCatalogJSON = errors.New("catalog json is not valid")
)

var (
	// ErrNilDatabaseConnection is returned when a writer is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyOrdersTableName is returned when an empty table name is configured.
	ErrEmptyOrdersTableName = errors.New("orders table name must not be empty")

	// ErrBuildingQueryFailed is returned when the insert statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrBeginningTransactionFailed is returned when no transaction could be started.
	ErrBeginningTransactionFailed = errors.New("beginning transaction failed")

	// ErrInsertingOrderFailed is returned when the insert statement fails.
	ErrInsertingOrderFailed = errors.New("inserting order failed")

	// ErrUnexpectedRowsAffected is returned when an insert did not affect exactly one row.
	ErrUnexpectedRowsAffected = errors.New("insert did not affect exactly one row")

	// ErrCommittingOrderFailed is returned when the transaction commit fails.
	ErrCommittingOrderFailed = errors.New("committing order failed")

	// ErrConnectingFailed is returned when a connection to the store cannot be opened.
	ErrConnectingFailed = errors.New("connecting to the store failed")

	// ErrClosingConnectionFailed is returned when the store connection cannot be closed cleanly.
	ErrClosingConnectionFailed = errors.New("closing the store connection failed")
)
