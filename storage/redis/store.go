// Package redis implements storage.CompanyStore on top of Redis.
//
// Keys live in a sorted set where every member has score 0, so ZRANGEBYLEX
// gives the byte-wise ordered range queries the directory needs. Each record
// is stored MUS-encoded under its own string key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/storage"
	goredis "github.com/redis/go-redis/v9"
)

const defaultNamespace = "orgdir:companies"

// Store implements storage.CompanyStore for Redis.
type Store struct {
	client    goredis.UniversalClient
	namespace string
	logger    *slog.Logger
}

var _ storage.CompanyStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store) error

// WithNamespace sets the key namespace.
// Default is "orgdir:companies".
func WithNamespace(namespace string) Option {
	return func(s *Store) error {
		if namespace == "" {
			return fmt.Errorf("%w: empty namespace", storage.ErrInvalidQuery)
		}
		s.namespace = namespace
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store over an existing client. The store takes
// ownership of the client and closes it in Close.
func NewStore(client goredis.UniversalClient, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	s := &Store{
		client:    client,
		namespace: defaultNamespace,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Open connects to the Redis server at addr.
func Open(addr string, opts ...Option) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	s, err := NewStore(client, opts...)
	if err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) indexKey() string {
	return s.namespace + ":index"
}

func (s *Store) recordKey(key string) string {
	return s.namespace + ":record:" + key
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, unavailable(err)
	}
	return int(n), nil
}

// RangeQuery returns records with lowerInclusive <= key < upperExclusive, ordered by key.
func (s *Store) RangeQuery(ctx context.Context, lowerInclusive, upperExclusive string) ([]*core.CompanyRecord, error) {
	if lowerInclusive > upperExclusive {
		return nil, fmt.Errorf("%w: lower bound %q is after upper bound %q",
			storage.ErrInvalidQuery, lowerInclusive, upperExclusive)
	}

	lo := "[" + lowerInclusive
	if lowerInclusive == "" {
		lo = "-"
	}
	keys, err := s.client.ZRangeByLex(ctx, s.indexKey(), &goredis.ZRangeBy{
		Min: lo,
		Max: "(" + upperExclusive,
	}).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	results := make([]*core.CompanyRecord, 0, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	recordKeys := make([]string, len(keys))
	for i, key := range keys {
		recordKeys[i] = s.recordKey(key)
	}
	values, err := s.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a record; a concurrent writer may be mid-upsert.
			s.logger.Warn("index entry has no record", "key", keys[i])
			continue
		}
		record, err := storage.UnmarshalCompanyRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	return results, nil
}

// Put upserts a record under key. The record and its index entry are
// written in one MULTI/EXEC block.
func (s *Store) Put(ctx context.Context, key string, record *core.CompanyRecord) error {
	value := storage.MarshalCompanyRecord(record)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(key), value, 0)
		pipe.ZAdd(ctx, s.indexKey(), goredis.Z{Score: 0, Member: key})
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// unavailable marks transport and server errors as storage.ErrUnavailable.
// Context errors pass through unchanged.
func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
}
