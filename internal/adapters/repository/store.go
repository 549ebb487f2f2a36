// Package repository defines the book store interface and errors.
package repository

import (
	"context"

	"github.com/praticodes/litloom/internal/domain/model"
)

// Store provides read/append access to the scraped book pool.
//
// Recommendation requests only read; appends happen on the offline harvest
// path. Implementations must be safe for concurrent use.
type Store interface {
	// LoadAll returns every available book record in insertion order.
	// Records carrying unavailability sentinels are filtered out here so
	// they never reach the score engine.
	LoadAll(ctx context.Context) ([]model.Book, error)

	// Append adds freshly scraped records to the pool.
	Append(ctx context.Context, books []model.Book) error

	// Count returns the number of available records in the pool.
	Count(ctx context.Context) int
}
