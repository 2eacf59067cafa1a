package search

import (
	"strings"
	"time"

	"github.com/poiesic/orgdir/core"
	"github.com/poiesic/orgdir/dataset"
)

// Index is the local fallback over the static dataset.
// It is read-only and safe for concurrent use.
type Index struct {
	records []indexEntry
	now     func() time.Time
}

// indexEntry keeps lower-cased fields so scans don't re-fold case.
type indexEntry struct {
	record        *core.CompanyRecord
	nameLower     string
	industryLower string
}

// NewIndex builds an index over every record of ds.
func NewIndex(ds *dataset.Dataset) *Index {
	idx := &Index{
		records: make([]indexEntry, 0, ds.Len()),
		now:     time.Now,
	}
	for r := range ds.All() {
		idx.records = append(idx.records, indexEntry{
			record:        r,
			nameLower:     strings.ToLower(r.Name),
			industryLower: strings.ToLower(r.Industry),
		})
	}
	return idx
}

// Scan returns every record whose normalized name, name or industry contains
// queryLower. The caller lower-cases the query. Matches are fresh copies
// stamped with the current time, in dataset order.
func (idx *Index) Scan(queryLower string) []*core.CompanyRecord {
	now := idx.now().UTC()
	results := []*core.CompanyRecord{}
	for _, e := range idx.records {
		if !e.matches(queryLower) {
			continue
		}
		r := e.record.Clone()
		r.Stamp(now)
		results = append(results, r)
	}
	return results
}

func (e indexEntry) matches(queryLower string) bool {
	return strings.Contains(e.record.NormalizedName, queryLower) ||
		strings.Contains(e.nameLower, queryLower) ||
		(e.industryLower != "" && strings.Contains(e.industryLower, queryLower))
}
