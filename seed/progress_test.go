package seed

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stepClock returns a clock that moves forward by step on every read.
func stepClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

func TestProgress_PrintsEveryInterval(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 100, 50, stepClock(time.Second))

	for i := 0; i < 49; i++ {
		p.add()
	}
	assert.Empty(t, buf.String())

	p.add()
	assert.Contains(t, buf.String(), "\rSeeding: 50/100 companies (50%), 50.0/s")
}

func TestProgress_DoneKeepsRealCount(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 100, 10, stepClock(time.Second))

	for i := 0; i < 75; i++ {
		p.add()
	}
	p.done()

	output := buf.String()
	assert.Contains(t, output, "75/100 companies (75%)")
	assert.NotContains(t, output, "100/100")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestProgress_StoppedClockOmitsRate(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newProgress(&buf, 2, 0, func() time.Time { return fixed })

	p.add()
	assert.Equal(t, "\rSeeding: 1/2 companies (50%)", buf.String())
}

func TestProgress_EmptyTotal(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 0, 10, stepClock(0))
	p.done()
	assert.Equal(t, "\rSeeding: 0/0 companies (100%)\n", buf.String())
}

func TestProgress_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 1000, 100, stepClock(time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.add()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, p.written)
	assert.Contains(t, buf.String(), "1000/1000 companies (100%)")
}
