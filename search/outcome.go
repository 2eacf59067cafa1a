package search

import "github.com/poiesic/orgdir/core"

// Status classifies the result of a remote query.
type Status int

const (
	// StatusHit means the query succeeded with at least one record.
	StatusHit Status = iota + 1
	// StatusEmpty means the query succeeded with no records.
	StatusEmpty
	// StatusFailed means the query returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one remote query.
type Outcome struct {
	Status  Status
	Records []*core.CompanyRecord
	Err     error
}

// newOutcome classifies the return values of a store query.
func newOutcome(records []*core.CompanyRecord, err error) Outcome {
	switch {
	case err != nil:
		return Outcome{Status: StatusFailed, Err: err}
	case len(records) == 0:
		return Outcome{Status: StatusEmpty}
	default:
		return Outcome{Status: StatusHit, Records: records}
	}
}

// Source identifies which result set a lookup used.
type Source int

const (
	// SourceNone means the query was too short to look up.
	SourceNone Source = iota
	// SourceRemote means the results came from the store.
	SourceRemote
	// SourceLocal means the results came from the local dataset.
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "none"
	}
}

// resolve picks the result set. A remote hit always wins, even though the
// local scan matches more loosely; local is consulted only on empty or failed.
func resolve(remote Outcome, local func() []*core.CompanyRecord) ([]*core.CompanyRecord, Source) {
	if remote.Status == StatusHit {
		return remote.Records, SourceRemote
	}
	return local(), SourceLocal
}
