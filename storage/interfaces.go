package storage

import (
	"context"

	"github.com/poiesic/orgdir/core"
)

// CompanyStore is the ordered document store the directory is seeded into
// and queried against. Keys are normalized company names compared byte-wise.
// Implementations must be thread-safe and support concurrent access.
type CompanyStore interface {
	// Count returns the number of records currently stored.
	Count(ctx context.Context) (int, error)

	// RangeQuery returns all records whose key k satisfies
	// lowerInclusive <= k < upperExclusive, ordered by key.
	// Returns ErrInvalidQuery if lowerInclusive > upperExclusive.
	RangeQuery(ctx context.Context, lowerInclusive, upperExclusive string) ([]*core.CompanyRecord, error)

	// Put upserts a record under key. An existing record with the same key
	// is overwritten in full.
	Put(ctx context.Context, key string, record *core.CompanyRecord) error

	// Close closes the store and releases resources.
	Close() error
}
