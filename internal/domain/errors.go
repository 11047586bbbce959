package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog document cannot be fetched or read
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCatalogMalformed is returned when the catalog document is not valid catalog JSON
	ErrCatalogMalformed = errors.New("catalog malformed")

	// ErrProductNotFound is returned when a catalog key does not exist
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
