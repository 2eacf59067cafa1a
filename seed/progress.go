package seed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progress prints a running count of written companies on one line.
type progress struct {
	mu      sync.Mutex
	w       io.Writer
	total   int
	every   int
	written int
	printed int
	began   time.Time
	now     func() time.Time
}

// newProgress starts counting at now(). A line is printed every `every`
// writes; values below one print on each write.
func newProgress(w io.Writer, total, every int, now func() time.Time) *progress {
	if every < 1 {
		every = 1
	}
	return &progress{w: w, total: total, every: every, now: now, began: now()}
}

// add counts one written company.
func (p *progress) add() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.written++
	if p.written-p.printed >= p.every {
		p.print()
	}
}

// done prints the final line and ends it. Failed writes leave the count
// short of the total.
func (p *progress) done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.print()
	fmt.Fprintln(p.w)
}

func (p *progress) print() {
	p.printed = p.written

	pct := 100
	if p.total > 0 {
		pct = p.written * 100 / p.total
	}
	fmt.Fprintf(p.w, "\rSeeding: %d/%d companies (%d%%)", p.written, p.total, pct)

	if secs := p.now().Sub(p.began).Seconds(); secs > 0 {
		fmt.Fprintf(p.w, ", %.1f/s", float64(p.written)/secs)
	}
}
