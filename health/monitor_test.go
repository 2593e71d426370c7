package health

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_UpdateAndGet(t *testing.T) {
	m := NewMonitor()

	m.Update("payment-api", NewHealthy("payment-api", "circuit closed"))

	status, ok := m.Get("payment-api")
	require.True(t, ok)
	assert.True(t, status.IsHealthy())
	assert.False(t, status.Timestamp.IsZero())
}

func TestMonitor_AggregateUnhealthyWins(t *testing.T) {
	m := NewMonitor()
	m.Update("a", NewHealthy("a", "ok"))
	m.Update("b", NewDegraded("b", "circuit half-open"))
	m.Update("c", NewUnhealthy("c", "circuit open"))

	agg := m.AggregateHealth("pipeline")
	assert.True(t, agg.IsUnhealthy())
	assert.Len(t, agg.SubStatuses, 3)
}

func TestMonitor_AggregateDegraded(t *testing.T) {
	m := NewMonitor()
	m.Update("a", NewHealthy("a", "ok"))
	m.Update("b", NewDegraded("b", "probing"))

	agg := m.AggregateHealth("pipeline")
	assert.True(t, agg.IsDegraded())
	assert.False(t, agg.Healthy)
}

func TestMonitor_AggregateEmptyIsHealthy(t *testing.T) {
	m := NewMonitor()
	agg := m.AggregateHealth("pipeline")
	assert.True(t, agg.IsHealthy())
}

func TestMonitor_Remove(t *testing.T) {
	m := NewMonitor()
	m.Update("a", NewHealthy("a", "ok"))
	m.Remove("a")

	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())
}

func TestMonitor_ConcurrentUpdates(t *testing.T) {
	m := NewMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Update("shared", NewHealthy("shared", "ok"))
				m.GetAll()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, m.Count())
}
