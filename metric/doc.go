// Package metric provides Prometheus instrumentation for the resilience
// pipeline.
//
// Metrics collects all pipeline-level metrics: classification verdicts,
// circuit breaker states and transitions, retry attempts and delays,
// escalations and notification outcomes. Components receive a *Metrics via
// functional option and tolerate a nil value, so instrumentation is always
// optional:
//
//	reg := metric.NewRegistry()
//	classifier := classify.New(classify.WithMetrics(reg.Metrics))
//	http.Handle("/metrics", reg.Handler())
package metric
