package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/resilience/metric"
)

// Message is the payload delivered to notification channels.
type Message struct {
	Summary   string            `json:"summary"`
	Detail    string            `json:"detail,omitempty"`
	Level     string            `json:"level"`
	Rule      string            `json:"rule"`
	Operation string            `json:"operation,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Channel is an addressable notification sink.
type Channel interface {
	// Name returns the channel's registry key.
	Name() string

	// Send delivers a message. Implementations should honor ctx.
	Send(ctx context.Context, msg Message) error
}

// RateLimit bounds how many notifications a channel may send inside a
// trailing window. A zero MaxPerWindow means unlimited.
type RateLimit struct {
	MaxPerWindow int
	Window       time.Duration
}

// Outcome reports one channel's dispatch result.
type Outcome struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Registry holds the named channels and their rate limiters. Channel
// registration is an administrative write path, not meant for hot failure
// paths.
type Registry struct {
	logger  *slog.Logger
	metrics *metric.Metrics
	now     func() time.Time

	mu       sync.RWMutex
	channels map[string]Channel
	limiters map[string]*slidingWindow
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metric.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty channel registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		channels: make(map[string]Channel),
		limiters: make(map[string]*slidingWindow),
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

// Register adds a channel with an optional rate limit. Registering the same
// name twice replaces the channel and resets its limiter.
func (r *Registry) Register(ch Channel, limit RateLimit) error {
	if ch == nil || ch.Name() == "" {
		return fmt.Errorf("notify.Register: channel must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.Name()] = ch
	if limit.MaxPerWindow > 0 && limit.Window > 0 {
		r.limiters[ch.Name()] = newSlidingWindow(limit.MaxPerWindow, limit.Window, r.now)
	} else {
		delete(r.limiters, ch.Name())
	}
	return nil
}

// Channels returns the registered channel names.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	return names
}

// Dispatch delivers msg to the named channels in order. Channels over their
// rate limit are skipped with a failed outcome; a failing or unknown channel
// never blocks the rest.
func (r *Registry) Dispatch(ctx context.Context, names []string, msg Message) []Outcome {
	outcomes := make([]Outcome, 0, len(names))

	for _, name := range names {
		r.mu.RLock()
		ch, ok := r.channels[name]
		limiter := r.limiters[name]
		r.mu.RUnlock()

		if !ok {
			outcomes = append(outcomes, Outcome{Channel: name, Error: "unknown channel"})
			r.metrics.RecordNotification(name, "unknown")
			continue
		}
		if limiter != nil && !limiter.Allow() {
			outcomes = append(outcomes, Outcome{Channel: name, Error: "rate limit exceeded"})
			r.metrics.RecordNotification(name, "rate_limited")
			r.logger.Warn("notification rate limit exceeded",
				"channel", name, "rule", msg.Rule)
			continue
		}

		if err := ch.Send(ctx, msg); err != nil {
			outcomes = append(outcomes, Outcome{Channel: name, Error: err.Error()})
			r.metrics.RecordNotification(name, "failure")
			r.logger.Error("notification dispatch failed",
				"channel", name, "rule", msg.Rule, "error", err)
			continue
		}
		outcomes = append(outcomes, Outcome{Channel: name, Success: true})
		r.metrics.RecordNotification(name, "success")
	}
	return outcomes
}
