package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_RegistersPipelineMetrics(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg.Metrics)

	reg.Metrics.RecordClassification("network", "high")
	reg.Metrics.RecordBreakerState("payment-api", 1)
	reg.Metrics.RecordRetryAttempt("payment-api", "failure")
	reg.Metrics.RecordEscalation("retries-exhausted", "support", "escalated")
	reg.Metrics.RecordNotification("log", "success")

	count := testutil.CollectAndCount(reg.Metrics.ClassificationsTotal)
	assert.Equal(t, 1, count)

	value := testutil.ToFloat64(reg.Metrics.BreakerState.WithLabelValues("payment-api"))
	assert.Equal(t, 1.0, value)
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordClassification("unknown", "medium")
		m.RecordCacheHit()
		m.RecordCacheMiss()
		m.RecordBreakerState("x", 0)
		m.RecordBreakerTransition("x", "closed", "open")
		m.RecordBreakerRejection("x")
		m.RecordRetryAttempt("x", "success")
		m.RecordRetryDelay("x", time.Second)
		m.RecordEscalation("r", "none", "no_rule_matched")
		m.RecordNotification("log", "failure")
	})
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry()
	assert.NotNil(t, reg.Handler())
	assert.NotNil(t, reg.PrometheusRegistry())
}
