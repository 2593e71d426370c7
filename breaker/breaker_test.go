package breaker

import (
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reserrors "github.com/c360/resilience/errors"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(t *testing.T, clock *fakeClock) *Breaker {
	t.Helper()
	reg := NewRegistry(WithClock(clock.Now))
	return reg.Get("test-op")
}

func TestBreaker_OpensAfterExactlyFiveFailures(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Allow(), "call %d should pass while closed", i+1)
		b.RecordFailure()
	}

	assert.Equal(t, StateOpen, b.State())

	// The 6th call is rejected without running the operation.
	err := b.Allow()
	require.Error(t, err)
	assert.True(t, reserrors.IsCircuitOpen(err))

	var coe *reserrors.CircuitOpenError
	require.True(t, stderrors.As(err, &coe))
	assert.Equal(t, "test-op", coe.OperationType)
	assert.Equal(t, "open", coe.State)
}

func TestBreaker_StaysClosedBelowThreshold(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 4; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}

	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestBreaker_SuccessDecaysFailureCount(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	// 4 failures, 2 successes: failureCount back to 2, so 2 more failures
	// still do not open the breaker.
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, b.Allow())
		b.RecordSuccess()
	}

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.NoError(t, b.Allow())
	b.RecordFailure()

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 4, b.Counts().Failures)
}

func TestBreaker_DecayFloorsAtZero(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Allow())
		b.RecordSuccess()
	}
	assert.Equal(t, 0, b.Counts().Failures)
}

func TestBreaker_LazyHalfOpenAfterRecoveryTimeout(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	require.Equal(t, StateOpen, b.State())

	// Still rejected just before the timeout.
	clock.Advance(DefaultRecoveryTimeout - time.Second)
	assert.Error(t, b.Allow())

	// Past the timeout the next check transitions to half-open and lets
	// the trial call through.
	clock.Advance(2 * time.Second)
	assert.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_HalfOpenSingleStrike(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	clock.Advance(DefaultRecoveryTimeout)
	require.NoError(t, b.Allow())
	require.Equal(t, StateHalfOpen, b.State())

	// Two trial successes, then one failure. Prior successes grant no grace.
	b.RecordSuccess()
	b.RecordSuccess()
	b.RecordFailure()

	assert.Equal(t, StateOpen, b.State())
	assert.Error(t, b.Allow())
}

func TestBreaker_HalfOpenClosesAfterThreeSuccesses(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	clock.Advance(DefaultRecoveryTimeout)
	require.NoError(t, b.Allow())

	for i := 0; i < 3; i++ {
		b.RecordSuccess()
	}

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Counts().Failures, "close from half-open resets the failure count")
}

func TestBreaker_ConcurrentFailuresSingleTransition(t *testing.T) {
	clock := newFakeClock()
	reg := NewRegistry(WithClock(clock.Now))
	b := reg.Get("concurrent-op")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() == nil {
				b.RecordFailure()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, StateOpen, b.State())
	// failureCount never exceeds what was actually recorded; the counters
	// were not double-adjusted by racing transitions.
	assert.LessOrEqual(t, b.Counts().Failures, 20)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
