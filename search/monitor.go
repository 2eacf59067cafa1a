package search

import "github.com/poiesic/orgdir/core"

// Monitor provides hooks to observe the lookup process.
// Implement this interface to track intermediate steps and results.
type Monitor interface {
	Start(query string)
	AfterRemoteQuery(outcome Outcome)
	AfterLocalScan(records []*core.CompanyRecord)
	Finish(results []*core.CompanyRecord, source Source)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) AfterRemoteQuery(_ Outcome)               {}
func (n *noopMonitor) AfterLocalScan(_ []*core.CompanyRecord)   {}
func (n *noopMonitor) Finish(_ []*core.CompanyRecord, _ Source) {}
