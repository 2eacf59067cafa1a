package search

import (
	"slices"
	"strings"

	"github.com/poiesic/orgdir/core"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ranker orders results by relevance to a query.
type Ranker struct {
	tag language.Tag
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithLanguage sets the collation language used to compare names.
// Default is English.
func WithLanguage(tag language.Tag) RankerOption {
	return func(r *Ranker) {
		r.tag = tag
	}
}

// NewRanker creates a ranker.
func NewRanker(opts ...RankerOption) *Ranker {
	r := &Ranker{tag: language.English}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// tier buckets a record: exact key match, key prefix match, anything else.
func tier(record *core.CompanyRecord, queryLower string) int {
	switch {
	case record.NormalizedName == queryLower:
		return 0
	case strings.HasPrefix(record.NormalizedName, queryLower):
		return 1
	default:
		return 2
	}
}

// Sort orders results in place and returns them. Exact matches on the
// normalized name come first, then prefix matches, then the rest; names are
// collated alphabetically within each tier. The sort is stable, so records
// that compare equal keep their input order.
func (r *Ranker) Sort(results []*core.CompanyRecord, queryLower string) []*core.CompanyRecord {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(r.tag)
	slices.SortStableFunc(results, func(a, b *core.CompanyRecord) int {
		if ta, tb := tier(a, queryLower), tier(b, queryLower); ta != tb {
			return ta - tb
		}
		return col.CompareString(a.Name, b.Name)
	})
	return results
}
