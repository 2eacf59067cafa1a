package seed

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuard(t *testing.T) {
	_, err := NewGuard(nil, "")
	assert.Equal(t, ErrSeederRequired, err)

	s := newTestSeeder(t, mock.NewStore(), dataset.Default())
	g, err := NewGuard(s, t.TempDir(), WithGuardLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, g.logger)
}

func TestGuard_ConcurrentCallsSeedOnce(t *testing.T) {
	store := mock.NewStore()
	ds := dataset.Default()
	g, err := NewGuard(newTestSeeder(t, store, ds), "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.Seed(context.Background())
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.Success)
		assert.Equal(t, ds.Len(), r.Count)
	}
	assert.Equal(t, ds.Len(), store.PutCalls(), "every company written exactly once")
}

func TestGuard_CanceledCallerDoesNotFailJoinedCaller(t *testing.T) {
	store := mock.NewStore()
	ds := dataset.Default()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	store.CountFunc = func(ctx context.Context) (int, error) {
		if calls.Add(1) > 1 {
			return store.PutCalls(), nil
		}
		close(started)
		<-release
		return 0, ctx.Err()
	}

	g, err := NewGuard(newTestSeeder(t, store, ds), "")
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	resA := make(chan Result, 1)
	go func() { resA <- g.Seed(ctxA) }()
	<-started

	resB := make(chan Result, 1)
	go func() { resB <- g.Seed(context.Background()) }()
	// Give the second caller time to join the blocked run.
	time.Sleep(50 * time.Millisecond)

	cancelA()
	a := <-resA
	assert.False(t, a.Success)
	assert.Equal(t, "Error: context canceled", a.Message)

	close(release)
	b := <-resB
	assert.True(t, b.Success)
	assert.Equal(t, ds.Len(), b.Count)
	assert.Equal(t, "Added 84 companies to database.", b.Message)
	assert.Equal(t, int32(1), calls.Load(), "second caller joined the first run")
}

func TestGuard_RunTimeout(t *testing.T) {
	store := mock.NewStore()
	store.CountFunc = func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	g, err := NewGuard(newTestSeeder(t, store, dataset.Default()), "", WithRunTimeout(20*time.Millisecond))
	require.NoError(t, err)

	result := g.Seed(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "Error: context deadline exceeded", result.Message)
	assert.Equal(t, 0, store.PutCalls())
}

func TestGuard_FileLockSerializesSeeders(t *testing.T) {
	store := mock.NewStore()
	ds := dataset.Default()
	lockDir := filepath.Join(t.TempDir(), "locks")

	first, err := NewGuard(newTestSeeder(t, store, ds), lockDir)
	require.NoError(t, err)
	second, err := NewGuard(newTestSeeder(t, store, ds), lockDir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var a, b Result
	wg.Add(2)
	go func() { defer wg.Done(); a = first.Seed(context.Background()) }()
	go func() { defer wg.Done(); b = second.Seed(context.Background()) }()
	wg.Wait()

	assert.True(t, a.Success)
	assert.True(t, b.Success)
	assert.Equal(t, ds.Len(), store.PutCalls())
	assert.ElementsMatch(t,
		[]string{"Added 84 companies to database.", "Companies collection already populated with 84 companies."},
		[]string{a.Message, b.Message})

	_, err = os.Stat(filepath.Join(lockDir, lockFileName))
	assert.NoError(t, err, "lock file should exist")
}

func TestGuard_LockFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := mock.NewStore()
	g, err := NewGuard(newTestSeeder(t, store, dataset.Default()), filepath.Join(blocker, "locks"))
	require.NoError(t, err)

	result := g.Seed(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Count)
	assert.Contains(t, result.Message, "Error: ")
	assert.Equal(t, 0, store.PutCalls())
}

func TestFileLock_LockUnlock(t *testing.T) {
	lock := NewFileLock(t.TempDir())
	assert.NoError(t, lock.Unlock(), "unlocking an unlocked lock is a no-op")

	require.NoError(t, lock.Lock(context.Background()))
	assert.True(t, lock.locked)
	require.NoError(t, lock.Unlock())
	assert.False(t, lock.locked)
}

func TestFileLock_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	holder := NewFileLock(dir)
	require.NoError(t, holder.Lock(context.Background()))
	defer holder.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileLock(dir).Lock(ctx)
	assert.ErrorIs(t, err, ErrLockFailed)
}
