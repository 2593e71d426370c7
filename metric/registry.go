package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the pipeline Metrics with the Prometheus registry they
// are registered against.
type Registry struct {
	prometheusRegistry *prometheus.Registry

	// Metrics holds the pipeline metric set registered with this registry.
	Metrics *Metrics
}

// NewRegistry creates a registry with all pipeline metrics plus Go runtime
// and process collectors registered.
func NewRegistry() *Registry {
	prometheusRegistry := prometheus.NewRegistry()

	metrics := NewMetrics()
	prometheusRegistry.MustRegister(
		metrics.ClassificationsTotal,
		metrics.ClassifierCacheHits,
		metrics.ClassifierCacheMiss,
		metrics.BreakerState,
		metrics.BreakerTransitions,
		metrics.BreakerRejections,
		metrics.RetryAttemptsTotal,
		metrics.RetryDelaySeconds,
		metrics.EscalationsTotal,
		metrics.NotificationsTotal,
	)

	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		prometheusRegistry: prometheusRegistry,
		Metrics:            metrics,
	}
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format. Mounting it is the hosting application's concern.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
