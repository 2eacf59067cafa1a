package seed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/storage"
	"github.com/poiesic/orgdir/storage/badger"
	"github.com/poiesic/orgdir/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T, store storage.CompanyStore, ds *dataset.Dataset, opts ...Option) *Seeder {
	t.Helper()
	s, err := NewSeeder(store, ds, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func TestNewSeeder(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSeeder(mock.NewStore(), dataset.Default())
		require.NoError(t, err)
		defer s.Release()
		assert.NotNil(t, s.pool)
		assert.NotNil(t, s.logger)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSeeder(nil, dataset.Default())
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil dataset", func(t *testing.T) {
		_, err := NewSeeder(mock.NewStore(), nil)
		assert.Equal(t, ErrDatasetRequired, err)
	})

	t.Run("pool size below one is clamped", func(t *testing.T) {
		s, err := NewSeeder(mock.NewStore(), dataset.Default(), WithPoolSize(0))
		require.NoError(t, err)
		defer s.Release()
		assert.Equal(t, 1, s.pool.Cap())
	})

	t.Run("nil logger and clock keep defaults", func(t *testing.T) {
		s, err := NewSeeder(mock.NewStore(), dataset.Default(), WithLogger(nil), WithClock(nil))
		require.NoError(t, err)
		defer s.Release()
		assert.NotNil(t, s.logger)
		assert.NotNil(t, s.now)
	})
}

func TestSeed_EmptyStore(t *testing.T) {
	store := mock.NewStore()
	ds := dataset.Default()
	seededAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSeeder(t, store, ds, WithPoolSize(4), WithClock(func() time.Time { return seededAt }))

	result := s.Seed(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, ds.Len(), result.Count)
	assert.Equal(t, "Added 84 companies to database.", result.Message)
	assert.Empty(t, result.Failed)
	assert.False(t, result.Partial())
	assert.Equal(t, ds.Len(), store.PutCalls())

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), count)

	google := store.Record("google")
	require.NotNil(t, google)
	assert.Equal(t, "Google", google.Name)
	assert.Equal(t, seededAt, google.CreatedAt)
	assert.Equal(t, seededAt, google.UpdatedAt)
}

func TestSeed_DoesNotMutateDataset(t *testing.T) {
	ds := dataset.Default()
	s := newTestSeeder(t, mock.NewStore(), ds)
	s.Seed(context.Background())

	for r := range ds.All() {
		assert.True(t, r.CreatedAt.IsZero(), "dataset record %q was stamped", r.Name)
	}
}

func TestSeed_AlreadyPopulated(t *testing.T) {
	store := mock.NewStore()
	store.CountFunc = func(ctx context.Context) (int, error) {
		return 5, nil
	}
	s := newTestSeeder(t, store, dataset.Default())

	result := s.Seed(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, "Companies collection already populated with 5 companies.", result.Message)
	assert.Equal(t, 0, store.PutCalls())
}

func TestSeed_CountFailure(t *testing.T) {
	store := mock.NewStore()
	store.CountFunc = func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	}
	s := newTestSeeder(t, store, dataset.Default())

	result := s.Seed(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, "Error: boom", result.Message)
	assert.Equal(t, 0, store.PutCalls())
}

func TestSeed_PartialWriteFailure(t *testing.T) {
	store := mock.NewStore()
	store.PutFunc = func(ctx context.Context, key string, record *core.CompanyRecord) error {
		if key == "apple" || key == "google" {
			return storage.ErrUnavailable
		}
		return nil
	}
	ds := dataset.Default()
	s := newTestSeeder(t, store, ds, WithPoolSize(8))

	result := s.Seed(context.Background())

	assert.True(t, result.Success)
	assert.True(t, result.Partial())
	assert.Equal(t, ds.Len()-2, result.Count)
	assert.Equal(t, "Added 82 companies to database.", result.Message)
	// Dataset order, regardless of which write finished first.
	assert.Equal(t, []string{"google", "apple"}, result.Failed)
	assert.Equal(t, ds.Len(), store.PutCalls())
}

func TestSeed_AllWritesFail(t *testing.T) {
	store := mock.NewStore()
	store.PutFunc = func(ctx context.Context, key string, record *core.CompanyRecord) error {
		return storage.ErrUnavailable
	}
	ds := dataset.Default()
	s := newTestSeeder(t, store, ds)

	result := s.Seed(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, "Added 0 companies to database.", result.Message)
	assert.Len(t, result.Failed, ds.Len())
}

func TestSeed_Idempotent(t *testing.T) {
	store, backend, err := badger.NewMemoryCompanyRepository()
	require.NoError(t, err)
	defer backend.Close()

	ds := dataset.Default()
	s := newTestSeeder(t, store, ds)
	ctx := context.Background()

	first := s.Seed(ctx)
	require.True(t, first.Success)
	assert.Equal(t, ds.Len(), first.Count)

	second := s.Seed(ctx)
	assert.True(t, second.Success)
	assert.Equal(t, ds.Len(), second.Count)
	assert.Equal(t, "Companies collection already populated with 84 companies.", second.Message)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), count)
}

func TestSeed_SmallDataset(t *testing.T) {
	ds, err := dataset.New(
		core.CompanyRecord{Name: "Zoom", Industry: "Technology"},
		core.CompanyRecord{Name: "Bank of America", Industry: "Finance"},
	)
	require.NoError(t, err)

	store := mock.NewStore()
	s := newTestSeeder(t, store, ds)
	result := s.Seed(context.Background())

	assert.Equal(t, "Added 2 companies to database.", result.Message)
	require.NotNil(t, store.Record("bank of america"))
	assert.Equal(t, "Finance", store.Record("bank of america").Industry)
}

func TestSeed_Progress(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSeeder(t, mock.NewStore(), dataset.Default(), WithProgress(&buf, 10))

	result := s.Seed(context.Background())
	require.True(t, result.Success)

	output := buf.String()
	assert.Contains(t, output, "84/84 companies (100%)")
	assert.Contains(t, output, "\n")
}

func TestSeed_LogsDuration(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	s := newTestSeeder(t, mock.NewStore(), dataset.Default(), WithLogger(logger), WithClock(tick))
	result := s.Seed(context.Background())
	require.True(t, result.Success)

	assert.Contains(t, logs.String(), "msg=\"seeding complete\" added=84 duration=1s")
}

func TestSeed_NoProgressWhenSkipped(t *testing.T) {
	var buf bytes.Buffer
	store := mock.NewStore()
	store.CountFunc = func(ctx context.Context) (int, error) { return 1, nil }
	s := newTestSeeder(t, store, dataset.Default(), WithProgress(&buf, 10))

	s.Seed(context.Background())
	assert.Empty(t, buf.String())
}
