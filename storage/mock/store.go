package mock

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/storage"
)

// Store is a test double for storage.CompanyStore.
// It allows custom behavior injection via function fields.
type Store struct {
	// CountFunc is called by Count if set.
	CountFunc func(ctx context.Context) (int, error)

	// RangeQueryFunc is called by RangeQuery if set.
	RangeQueryFunc func(ctx context.Context, lower, upper string) ([]*core.CompanyRecord, error)

	// PutFunc is called by Put if set. Records are not kept when it is set.
	PutFunc func(ctx context.Context, key string, record *core.CompanyRecord) error

	mu      sync.RWMutex
	records map[string]*core.CompanyRecord

	countCalls atomic.Int64
	rangeCalls atomic.Int64
	putCalls   atomic.Int64
	closed     atomic.Bool
}

var _ storage.CompanyStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]*core.CompanyRecord)}
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.countCalls.Add(1)
	if s.CountFunc != nil {
		return s.CountFunc(ctx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// RangeQuery returns copies of records with lower <= key < upper, ordered by key.
func (s *Store) RangeQuery(ctx context.Context, lower, upper string) ([]*core.CompanyRecord, error) {
	s.rangeCalls.Add(1)
	if s.RangeQueryFunc != nil {
		return s.RangeQueryFunc(ctx, lower, upper)
	}
	if lower > upper {
		return nil, fmt.Errorf("%w: lower bound after upper bound", storage.ErrInvalidQuery)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		if lower <= k && k < upper {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	results := make([]*core.CompanyRecord, 0, len(keys))
	for _, k := range keys {
		results = append(results, s.records[k].Clone())
	}
	return results, nil
}

// Put stores a copy of record under key.
func (s *Store) Put(ctx context.Context, key string, record *core.CompanyRecord) error {
	s.putCalls.Add(1)
	if s.PutFunc != nil {
		return s.PutFunc(ctx, key, record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = record.Clone()
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

// Record returns a copy of the record stored under key, or nil.
func (s *Store) Record(key string) *core.CompanyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key]
	if !ok {
		return nil
	}
	return r.Clone()
}

// CountCalls returns the number of times Count was called.
func (s *Store) CountCalls() int {
	return int(s.countCalls.Load())
}

// RangeQueryCalls returns the number of times RangeQuery was called.
func (s *Store) RangeQueryCalls() int {
	return int(s.rangeCalls.Load())
}

// PutCalls returns the number of times Put was called.
func (s *Store) PutCalls() int {
	return int(s.putCalls.Load())
}

// Closed reports whether Close was called.
func (s *Store) Closed() bool {
	return s.closed.Load()
}
