package breaker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/c360/resilience/health"
	"github.com/c360/resilience/metric"
)

// Registry owns one breaker per operation type for the process lifetime.
// Creation is lazy and idempotent; lookups after creation take only a read
// lock.
type Registry struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metric.Metrics
	now     func() time.Time

	mu       sync.RWMutex
	breakers map[string]*Breaker
}

// Option configures a Registry.
type Option func(*Registry)

// WithConfig sets the config applied to every breaker the registry creates.
func WithConfig(cfg Config) Option {
	return func(r *Registry) { r.cfg = cfg }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty breaker registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		breakers: make(map[string]*Breaker),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Get returns the breaker for an operation type, creating it on first use.
// Exactly one breaker ever exists per key.
func (r *Registry) Get(operationType string) *Breaker {
	if operationType == "" {
		operationType = "default"
	}

	r.mu.RLock()
	b, ok := r.breakers[operationType]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.breakers[operationType]; ok {
		return b
	}
	b = newBreaker(operationType, r.cfg, r.logger, r.metrics, r.now)
	r.breakers[operationType] = b
	return b
}

// States returns the current state of every known breaker.
func (r *Registry) States() map[string]State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make(map[string]State, len(r.breakers))
	for key, b := range r.breakers {
		states[key] = b.State()
	}
	return states
}

// Counts returns counter snapshots for every known breaker.
func (r *Registry) Counts() map[string]Counts {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]Counts, len(r.breakers))
	for key, b := range r.breakers {
		counts[key] = b.Counts()
	}
	return counts
}

// ExportHealth publishes each breaker's state into a health monitor:
// closed = healthy, half-open = degraded, open = unhealthy.
func (r *Registry) ExportHealth(monitor *health.Monitor) {
	for key, state := range r.States() {
		switch state {
		case StateClosed:
			monitor.Update(key, health.NewHealthy(key, "circuit closed"))
		case StateHalfOpen:
			monitor.Update(key, health.NewDegraded(key, "circuit half-open, probing recovery"))
		case StateOpen:
			monitor.Update(key, health.NewUnhealthy(key, "circuit open, rejecting calls"))
		}
	}
}
