package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	// ErrUnavailable reports that the backing store could not be read or
	// holds no usable records. Callers surface it; no partial pool is
	// returned.
	ErrUnavailable = errors.New("book repository unavailable")

	// ErrBadRecord reports a row that does not parse as a book record.
	ErrBadRecord = errors.New("malformed book record")
)
