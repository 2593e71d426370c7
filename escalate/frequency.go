package escalate

import (
	"sync"
	"time"

	"github.com/c360/resilience/classify"
)

// kindFrequency counts recent failures per classification kind so the
// high-frequency rule can detect bursts. Each kind keeps a fixed-size ring
// of the most recent observation times; memory stays bounded no matter how
// fast failures arrive.
type kindFrequency struct {
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	rings map[classify.Kind]*timeRing
}

func newKindFrequency(window time.Duration, now func() time.Time) *kindFrequency {
	return &kindFrequency{
		window: window,
		now:    now,
		rings:  map[classify.Kind]*timeRing{},
	}
}

// observe records one occurrence of kind at the current time.
func (f *kindFrequency) observe(kind classify.Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ring, ok := f.rings[kind]
	if !ok {
		// threshold+1 slots: enough to prove "more than threshold"
		// occurrences without retaining a full burst.
		ring = &timeRing{slots: make([]time.Time, highFrequencyThreshold+1)}
		f.rings[kind] = ring
	}
	ring.add(f.now())
}

// count reports how many retained occurrences of kind fall inside the
// window ending now.
func (f *kindFrequency) count(kind classify.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ring, ok := f.rings[kind]
	if !ok {
		return 0
	}
	return ring.countSince(f.now().Add(-f.window))
}

// timeRing is a fixed-capacity ring of timestamps, newest overwriting
// oldest.
type timeRing struct {
	slots []time.Time
	head  int
	n     int
}

func (r *timeRing) add(t time.Time) {
	r.slots[r.head] = t
	r.head = (r.head + 1) % len(r.slots)
	if r.n < len(r.slots) {
		r.n++
	}
}

func (r *timeRing) countSince(cutoff time.Time) int {
	count := 0
	for i := 0; i < r.n; i++ {
		if !r.slots[i].Before(cutoff) {
			count++
		}
	}
	return count
}
