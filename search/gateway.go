package search

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/storage"
)

const defaultMinQueryLength = 2

// Gateway looks up companies in the remote store and falls back to the
// local index. It holds no mutable state and is safe for concurrent use.
type Gateway struct {
	store          storage.CompanyStore
	index          *Index
	ranker         *Ranker
	minQueryLength int
	logger         *slog.Logger
}

// Lookup is a ranked result set and the source it came from.
type Lookup struct {
	Results []*core.CompanyRecord
	Source  Source
}

// Option configures a Gateway.
type Option func(*Gateway) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// WithRanker sets the ranker used to order results.
// Default is NewRanker().
func WithRanker(ranker *Ranker) Option {
	return func(g *Gateway) error {
		if ranker != nil {
			g.ranker = ranker
		}
		return nil
	}
}

// WithMinQueryLength sets the shortest query, in characters, that is looked up.
// Default is 2.
func WithMinQueryLength(n int) Option {
	return func(g *Gateway) error {
		if n < 1 {
			return ErrInvalidMinQueryLength
		}
		g.minQueryLength = n
		return nil
	}
}

// NewGateway creates a new gateway.
func NewGateway(store storage.CompanyStore, index *Index, opts ...Option) (*Gateway, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	g := &Gateway{
		store:          store,
		index:          index,
		ranker:         NewRanker(),
		minQueryLength: defaultMinQueryLength,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Search returns ranked companies matching queryText. It never fails: store
// errors fall back to the local index, and short queries yield an empty slice.
func (g *Gateway) Search(ctx context.Context, queryText string) []*core.CompanyRecord {
	return g.SearchWithMonitor(ctx, queryText, nil).Results
}

// Lookup is Search plus the source of the results.
func (g *Gateway) Lookup(ctx context.Context, queryText string) Lookup {
	return g.SearchWithMonitor(ctx, queryText, nil)
}

// SearchWithMonitor performs a lookup with monitoring.
// The monitor receives callbacks at each stage of the lookup.
func (g *Gateway) SearchWithMonitor(ctx context.Context, queryText string, monitor Monitor) Lookup {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(queryText)

	if utf8.RuneCountInString(queryText) < g.minQueryLength {
		results := []*core.CompanyRecord{}
		monitor.Finish(results, SourceNone)
		return Lookup{Results: results, Source: SourceNone}
	}

	queryLower := core.NormalizeName(queryText)

	// 1. Prefix query against the store
	remote := g.queryRemote(ctx, queryLower)
	monitor.AfterRemoteQuery(remote)

	// 2. Local scan only when the store had nothing usable
	results, source := resolve(remote, func() []*core.CompanyRecord {
		local := g.index.Scan(queryLower)
		g.logger.Debug("local fallback", "query", queryLower, "reason", remote.Status.String(), "hits", len(local))
		monitor.AfterLocalScan(local)
		return local
	})

	// 3. Rank whichever set was used
	g.ranker.Sort(results, queryLower)
	monitor.Finish(results, source)

	return Lookup{Results: results, Source: source}
}

func (g *Gateway) queryRemote(ctx context.Context, queryLower string) Outcome {
	lower, upper := storage.PrefixRange(queryLower)
	outcome := newOutcome(g.store.RangeQuery(ctx, lower, upper))
	switch outcome.Status {
	case StatusFailed:
		g.logger.Warn("store query failed, falling back to local dataset", "query", queryLower, "err", outcome.Err)
	case StatusHit:
		g.logger.Debug("store hit", "query", queryLower, "hits", len(outcome.Records))
	}
	return outcome
}
