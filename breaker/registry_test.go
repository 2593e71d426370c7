package breaker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/resilience/health"
)

func TestRegistry_GetIsLazyAndIdempotent(t *testing.T) {
	reg := NewRegistry()

	first := reg.Get("payment-api")
	second := reg.Get("payment-api")

	assert.Same(t, first, second, "one breaker per operation type")
	assert.Len(t, reg.States(), 1)
}

func TestRegistry_EmptyKeyFallsBackToDefault(t *testing.T) {
	reg := NewRegistry()

	b := reg.Get("")
	assert.Same(t, b, reg.Get("default"))
}

func TestRegistry_DistinctKeysDistinctBreakers(t *testing.T) {
	reg := NewRegistry()

	payments := reg.Get("payment-api")
	deploys := reg.Get("deployment")
	require.NotSame(t, payments, deploys)

	// Opening one breaker leaves the other untouched.
	for i := 0; i < DefaultFailureThreshold; i++ {
		require.NoError(t, payments.Allow())
		payments.RecordFailure()
	}
	assert.Equal(t, StateOpen, payments.State())
	assert.Equal(t, StateClosed, deploys.State())
}

func TestRegistry_ConcurrentGetSameKey(t *testing.T) {
	reg := NewRegistry()

	breakers := make([]*Breaker, 50)
	var wg sync.WaitGroup
	for i := range breakers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			breakers[n] = reg.Get("shared")
		}(i)
	}
	wg.Wait()

	for _, b := range breakers {
		assert.Same(t, breakers[0], b)
	}
}

func TestRegistry_ExportHealth(t *testing.T) {
	reg := NewRegistry()
	monitor := health.NewMonitor()

	open := reg.Get("failing-op")
	for i := 0; i < DefaultFailureThreshold; i++ {
		require.NoError(t, open.Allow())
		open.RecordFailure()
	}
	reg.Get("healthy-op")

	reg.ExportHealth(monitor)

	failing, ok := monitor.Get("failing-op")
	require.True(t, ok)
	assert.True(t, failing.IsUnhealthy())

	healthy, ok := monitor.Get("healthy-op")
	require.True(t, ok)
	assert.True(t, healthy.IsHealthy())

	assert.True(t, monitor.AggregateHealth("pipeline").IsUnhealthy())
}

func TestRegistry_CountsSnapshot(t *testing.T) {
	reg := NewRegistry()
	b := reg.Get("op")

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.NoError(t, b.Allow())
	b.RecordSuccess()

	counts := reg.Counts()["op"]
	assert.Equal(t, int64(2), counts.TotalRequests)
	assert.Equal(t, 0, counts.Failures)
}
