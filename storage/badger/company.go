package badger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/storage"
)

// CompanyRepository implements storage.CompanyStore for BadgerDB.
type CompanyRepository struct {
	backend *Backend
}

var _ storage.CompanyStore = (*CompanyRepository)(nil)

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(backend *Backend) *CompanyRepository {
	return &CompanyRepository{
		backend: backend,
	}
}

// Close releases resources. The backend is owned by the caller.
func (r *CompanyRepository) Close() error {
	return nil
}

// Count returns the number of stored company records.
// Only keys are read; values are not fetched.
func (r *CompanyRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(companyRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RangeQuery returns records with lowerInclusive <= key < upperExclusive, ordered by key.
func (r *CompanyRepository) RangeQuery(ctx context.Context, lowerInclusive, upperExclusive string) ([]*core.CompanyRecord, error) {
	if lowerInclusive > upperExclusive {
		return nil, fmt.Errorf("%w: lower bound %q is after upper bound %q",
			storage.ErrInvalidQuery, lowerInclusive, upperExclusive)
	}

	results := []*core.CompanyRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(companyRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(companyRecordPrefix)
		upper := makeCompanyKey(upperExclusive)
		for iter.Seek(makeCompanyKey(lowerInclusive)); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			key := item.Key()

			// Stop once we've moved past the range or the company keys
			if !hasPrefix(key, prefix) || bytes.Compare(key, upper) >= 0 {
				break
			}

			var record *core.CompanyRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalCompanyRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Put upserts a record under key.
func (r *CompanyRepository) Put(ctx context.Context, key string, record *core.CompanyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCompanyKey(key), storage.MarshalCompanyRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
