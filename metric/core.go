package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all pipeline-level metrics.
type Metrics struct {
	// Classifier metrics
	ClassificationsTotal *prometheus.CounterVec
	ClassifierCacheHits  prometheus.Counter
	ClassifierCacheMiss  prometheus.Counter

	// Circuit breaker metrics
	BreakerState       *prometheus.GaugeVec
	BreakerTransitions *prometheus.CounterVec
	BreakerRejections  *prometheus.CounterVec

	// Retry engine metrics
	RetryAttemptsTotal *prometheus.CounterVec
	RetryDelaySeconds  *prometheus.HistogramVec

	// Escalation metrics
	EscalationsTotal   *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ClassificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "classifier",
				Name:      "classifications_total",
				Help:      "Total number of error classifications by kind and severity",
			},
			[]string{"kind", "severity"},
		),

		ClassifierCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "classifier",
				Name:      "cache_hits_total",
				Help:      "Total number of classification cache hits",
			},
		),

		ClassifierCacheMiss: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "classifier",
				Name:      "cache_misses_total",
				Help:      "Total number of classification cache misses",
			},
		),

		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "resilience",
				Subsystem: "breaker",
				Name:      "state",
				Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"operation_type"},
		),

		BreakerTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "breaker",
				Name:      "transitions_total",
				Help:      "Total number of circuit breaker state transitions",
			},
			[]string{"operation_type", "from", "to"},
		),

		BreakerRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "breaker",
				Name:      "rejections_total",
				Help:      "Total number of calls rejected by an open circuit breaker",
			},
			[]string{"operation_type"},
		),

		RetryAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "retry",
				Name:      "attempts_total",
				Help:      "Total number of operation attempts by outcome",
			},
			[]string{"operation_type", "outcome"},
		),

		RetryDelaySeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "resilience",
				Subsystem: "retry",
				Name:      "delay_seconds",
				Help:      "Computed backoff delay between retry attempts",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
			},
			[]string{"operation_type"},
		),

		EscalationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "escalation",
				Name:      "evaluations_total",
				Help:      "Total number of escalation evaluations by rule, level and outcome",
			},
			[]string{"rule", "level", "outcome"},
		),

		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resilience",
				Subsystem: "notify",
				Name:      "notifications_total",
				Help:      "Total number of notification dispatch outcomes by channel",
			},
			[]string{"channel", "outcome"},
		),
	}
}

// RecordClassification increments the classification counter.
func (m *Metrics) RecordClassification(kind, severity string) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(kind, severity).Inc()
}

// RecordCacheHit increments the classifier cache hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.ClassifierCacheHits.Inc()
}

// RecordCacheMiss increments the classifier cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.ClassifierCacheMiss.Inc()
}

// RecordBreakerState updates the breaker state gauge.
func (m *Metrics) RecordBreakerState(operationType string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(operationType).Set(float64(state))
}

// RecordBreakerTransition increments the breaker transition counter.
func (m *Metrics) RecordBreakerTransition(operationType, from, to string) {
	if m == nil {
		return
	}
	m.BreakerTransitions.WithLabelValues(operationType, from, to).Inc()
}

// RecordBreakerRejection increments the breaker rejection counter.
func (m *Metrics) RecordBreakerRejection(operationType string) {
	if m == nil {
		return
	}
	m.BreakerRejections.WithLabelValues(operationType).Inc()
}

// RecordRetryAttempt increments the retry attempt counter.
func (m *Metrics) RecordRetryAttempt(operationType, outcome string) {
	if m == nil {
		return
	}
	m.RetryAttemptsTotal.WithLabelValues(operationType, outcome).Inc()
}

// RecordRetryDelay records a computed backoff delay.
func (m *Metrics) RecordRetryDelay(operationType string, delay time.Duration) {
	if m == nil {
		return
	}
	m.RetryDelaySeconds.WithLabelValues(operationType).Observe(delay.Seconds())
}

// RecordEscalation increments the escalation evaluation counter.
func (m *Metrics) RecordEscalation(rule, level, outcome string) {
	if m == nil {
		return
	}
	m.EscalationsTotal.WithLabelValues(rule, level, outcome).Inc()
}

// RecordNotification increments the notification outcome counter.
func (m *Metrics) RecordNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}
