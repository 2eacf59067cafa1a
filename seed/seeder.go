package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/storage"
)

// Result is the outcome of a seed run.
type Result struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"` // Companies written, or already present when nothing was written
	Message string   `json:"message"`
	Failed  []string `json:"failed,omitempty"` // Normalized names whose write failed, in dataset order
}

// Partial reports whether the run succeeded but some writes failed.
func (r Result) Partial() bool {
	return r.Success && len(r.Failed) > 0
}

// Seeder populates an empty store from a dataset.
type Seeder struct {
	store            storage.CompanyStore
	dataset          *dataset.Dataset
	pool             *ants.Pool
	progressWriter   io.Writer
	progressInterval int
	now              func() time.Time
	logger           *slog.Logger
}

// Option configures a Seeder.
type Option func(*Seeder) error

// WithPoolSize sets the number of concurrent writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Seeder) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithProgress writes progress to w every interval companies.
// Progress is off by default.
func WithProgress(w io.Writer, interval int) Option {
	return func(s *Seeder) error {
		s.progressWriter = w
		s.progressInterval = interval
		return nil
	}
}

// WithClock sets the time source used to stamp seeded records and to time
// the run.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// NewSeeder creates a seeder that writes ds into store.
// Call Release when the seeder is no longer needed.
func NewSeeder(store storage.CompanyStore, ds *dataset.Dataset, opts ...Option) (*Seeder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if ds == nil {
		return nil, ErrDatasetRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Seeder{
		store:   store,
		dataset: ds,
		pool:    pool,
		now:     time.Now,
		logger:  slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Seed writes every dataset record to the store if, and only if, the store
// holds no companies. It never returns an error: a failed count is reported
// with Success false, and failed writes are listed in Result.Failed.
func (s *Seeder) Seed(ctx context.Context) Result {
	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Error("error counting companies", "err", err)
		return Result{Success: false, Count: 0, Message: fmt.Sprintf("Error: %s", err)}
	}

	if count > 0 {
		s.logger.Info("companies already seeded", "count", count)
		return Result{
			Success: true,
			Count:   count,
			Message: fmt.Sprintf("Companies collection already populated with %d companies.", count),
		}
	}

	records := s.dataset.Records()
	s.logger.Info("seeding companies", "total", len(records))

	start := s.now()
	stamp := start.UTC()
	for _, r := range records {
		r.Stamp(stamp)
	}

	var prog *progress
	if s.progressWriter != nil {
		prog = newProgress(s.progressWriter, len(records), s.progressInterval, s.now)
	}

	failed := s.writeAll(ctx, records, prog)

	if prog != nil {
		prog.done()
	}
	took := s.now().Sub(start)

	var failedNames []string
	for i, r := range records {
		if failed[i] {
			failedNames = append(failedNames, r.NormalizedName)
		}
	}
	written := len(records) - len(failedNames)

	if len(failedNames) > 0 {
		s.logger.Warn("seeding finished with failures", "added", written, "failed", len(failedNames), "duration", took)
	} else {
		s.logger.Info("seeding complete", "added", written, "duration", took)
	}

	return Result{
		Success: true,
		Count:   written,
		Message: fmt.Sprintf("Added %d companies to database.", written),
		Failed:  failedNames,
	}
}

// writeAll submits one write per record and waits for all of them.
// The returned slice flags failed records by index.
func (s *Seeder) writeAll(ctx context.Context, records []*core.CompanyRecord, prog *progress) []bool {
	failed := make([]bool, len(records))
	var wg sync.WaitGroup

	for i, r := range records {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			if err := s.store.Put(ctx, r.NormalizedName, r); err != nil {
				s.logger.Error("error seeding company", "name", r.NormalizedName, "err", err)
				failed[i] = true
				return
			}
			if prog != nil {
				prog.add()
			}
		})
		if err != nil {
			wg.Done()
			s.logger.Error("error submitting company write", "name", r.NormalizedName, "err", err)
			failed[i] = true
		}
	}

	wg.Wait()
	return failed
}

// Release releases the worker pool.
// The seeder should not be used after calling Release.
func (s *Seeder) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
