package seed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"
)

// Guard coordinates seed runs that may start at the same time.
// Calls that overlap in one process share a single run. When a lock
// directory is set, runs in different processes also take turns; the later
// run then finds the store populated and writes nothing.
//
// The shared run is detached from any one caller's context and bounded by
// its own timeout instead. A caller whose context ends stops waiting and gets
// an error result; the run and the other callers carry on.
type Guard struct {
	seeder     *Seeder
	lockDir    string
	runTimeout time.Duration
	group      singleflight.Group
	logger     *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithGuardLogger sets a custom logger.
// Default is slog.Default().
func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRunTimeout bounds a shared seed run.
// Default is one minute.
func WithRunTimeout(d time.Duration) GuardOption {
	return func(g *Guard) {
		if d > 0 {
			g.runTimeout = d
		}
	}
}

// NewGuard wraps seeder. An empty lockDir disables the cross-process lock.
func NewGuard(seeder *Seeder, lockDir string, opts ...GuardOption) (*Guard, error) {
	if seeder == nil {
		return nil, ErrSeederRequired
	}
	g := &Guard{
		seeder:     seeder,
		lockDir:    lockDir,
		runTimeout: time.Minute,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Seed runs the wrapped seeder, joining a run already in flight.
func (g *Guard) Seed(ctx context.Context) Result {
	ch := g.group.DoChan("seed", func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.runTimeout)
		defer cancel()
		return g.seedLocked(runCtx), nil
	})

	select {
	case res := <-ch:
		result := res.Val.(Result)
		if res.Shared {
			g.logger.Debug("joined in-flight seed run")
			result.Failed = slices.Clone(result.Failed)
		}
		return result
	case <-ctx.Done():
		g.logger.Warn("stopped waiting for seed run", "err", ctx.Err())
		return Result{Success: false, Count: 0, Message: fmt.Sprintf("Error: %s", ctx.Err())}
	}
}

func (g *Guard) seedLocked(ctx context.Context) Result {
	if g.lockDir == "" {
		return g.seeder.Seed(ctx)
	}

	lock := NewFileLock(g.lockDir)
	if err := lock.Lock(ctx); err != nil {
		g.logger.Error("error acquiring seed lock", "path", lock.Path(), "err", err)
		return Result{Success: false, Count: 0, Message: fmt.Sprintf("Error: %s", err)}
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.logger.Warn("error releasing seed lock", "path", lock.Path(), "err", err)
		}
	}()

	return g.seeder.Seed(ctx)
}
