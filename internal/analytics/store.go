// Package analytics persists search-query records and aggregates them into
// popular terms. The store is append-only: records are never updated or
// deleted by the engine.
package analytics

import (
	"context"

	"github.com/gatherly/scout/internal/models"
)

// Store defines analytics persistence operations.
type Store interface {
	// Append persists one query record. The record's ID and SearchedAt are
	// filled in when empty.
	Append(ctx context.Context, record *models.QueryRecord) error

	// PopularTerms returns up to n distinct normalized query terms ranked by
	// frequency descending, most recent first on ties. n <= 0 returns an
	// empty result, not an error.
	PopularTerms(ctx context.Context, n int) ([]string, error)

	// TermFrequencies returns up to limit historical terms with their
	// recorded frequencies, most frequent first.
	TermFrequencies(ctx context.Context, limit int) ([]models.TermCount, error)

	// Count returns the total number of recorded searches.
	Count(ctx context.Context) (int64, error)

	Close() error
}
