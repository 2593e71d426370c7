package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	clock := newTestClock()
	w := newSlidingWindow(3, time.Minute, clock.Now)

	assert.True(t, w.Allow())
	assert.True(t, w.Allow())
	assert.True(t, w.Allow())
	assert.False(t, w.Allow(), "fourth send within the window must be denied")
}

func TestSlidingWindow_SlotFreesAsOldestAgesOut(t *testing.T) {
	clock := newTestClock()
	w := newSlidingWindow(2, time.Minute, clock.Now)

	assert.True(t, w.Allow()) // t=0
	clock.Advance(30 * time.Second)
	assert.True(t, w.Allow()) // t=30s
	assert.False(t, w.Allow())

	// t=61s: the t=0 send has aged out, one slot free.
	clock.Advance(31 * time.Second)
	assert.True(t, w.Allow())
	assert.False(t, w.Allow(), "the t=30s send is still inside the window")
}

func TestSlidingWindow_SingleSlot(t *testing.T) {
	clock := newTestClock()
	w := newSlidingWindow(1, time.Minute, clock.Now)

	assert.True(t, w.Allow())
	assert.False(t, w.Allow())

	clock.Advance(time.Minute)
	assert.True(t, w.Allow())
}

func TestSlidingWindow_AtomicUnderConcurrency(t *testing.T) {
	clock := newTestClock()
	w := newSlidingWindow(5, time.Minute, clock.Now)

	var wg sync.WaitGroup
	allowed := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- w.Allow()
		}()
	}
	wg.Wait()
	close(allowed)

	granted := 0
	for ok := range allowed {
		if ok {
			granted++
		}
	}
	assert.Equal(t, 5, granted, "exactly the window capacity may slip through")
}
