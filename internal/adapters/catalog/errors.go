package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	// ErrUnavailable reports a page that could not be fetched or parsed
	// into a book record. Such records never enter the scoring pool.
	ErrUnavailable = errors.New("book record unavailable")

	// ErrRateLimited reports that the catalog site throttled us.
	ErrRateLimited = errors.New("catalog rate limited")

	// ErrServer reports a catalog-side server failure.
	ErrServer = errors.New("catalog server error")
)
