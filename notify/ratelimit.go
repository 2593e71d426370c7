package notify

import (
	"sync"
	"time"
)

// slidingWindow is a fixed-capacity sliding-window counter: it remembers the
// timestamps of the last maxPerWindow sends in a ring buffer. A send is
// allowed when fewer than maxPerWindow sends happened inside the trailing
// window. Check and record are one atomic step, so two near-simultaneous
// sends cannot both slip through the last slot.
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time

	times []time.Time // ring buffer, len = maxPerWindow
	head  int         // index of the oldest recorded send
	count int         // recorded sends, grows to len(times) then stays
}

func newSlidingWindow(maxPerWindow int, window time.Duration, now func() time.Time) *slidingWindow {
	return &slidingWindow{
		window: window,
		now:    now,
		times:  make([]time.Time, maxPerWindow),
	}
}

// Allow reports whether a send may proceed now, recording it if so.
func (w *slidingWindow) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if w.count < len(w.times) {
		w.times[(w.head+w.count)%len(w.times)] = now
		w.count++
		return true
	}

	// Ring is full: the oldest send must have aged out of the window.
	if now.Sub(w.times[w.head]) < w.window {
		return false
	}
	w.times[w.head] = now
	w.head = (w.head + 1) % len(w.times)
	return true
}
