package breaker

import (
	"log/slog"
	"sync"
	"time"

	reserrors "github.com/c360/resilience/errors"
	"github.com/c360/resilience/metric"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed passes requests through. Initial state.
	StateClosed State = iota
	// StateOpen rejects all requests immediately.
	StateOpen
	// StateHalfOpen passes requests through as trial calls.
	StateHalfOpen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Defaults for Config fields left zero.
const (
	DefaultFailureThreshold  = 5
	DefaultRecoveryTimeout   = 60 * time.Second
	DefaultHalfOpenSuccesses = 3
)

// Config tunes a breaker's transitions.
type Config struct {
	// FailureThreshold is the closed-state failure count that opens the
	// breaker.
	FailureThreshold int

	// RecoveryTimeout is how long the breaker stays open before trial
	// calls are allowed.
	RecoveryTimeout time.Duration

	// HalfOpenSuccesses is the consecutive success count that closes the
	// breaker from half-open.
	HalfOpenSuccesses int
}

func (c Config) withDefaults() Config {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.RecoveryTimeout <= 0 {
		c.RecoveryTimeout = DefaultRecoveryTimeout
	}
	if c.HalfOpenSuccesses <= 0 {
		c.HalfOpenSuccesses = DefaultHalfOpenSuccesses
	}
	return c
}

// Counts is a point-in-time snapshot of a breaker's counters.
type Counts struct {
	State           State     `json:"state"`
	Failures        int       `json:"failures"`
	Successes       int       `json:"successes"`
	TotalRequests   int64     `json:"total_requests"`
	LastFailureTime time.Time `json:"last_failure_time"`
}

// Breaker tracks health of one operation type. Safe for concurrent use;
// transitions are atomic with respect to concurrent successes and failures
// on the same operation type.
type Breaker struct {
	operationType string
	cfg           Config
	logger        *slog.Logger
	metrics       *metric.Metrics
	now           func() time.Time

	mu              sync.Mutex
	state           State
	failureCount    int
	successCount    int
	totalRequests   int64
	lastFailureTime time.Time
}

func newBreaker(operationType string, cfg Config, logger *slog.Logger, metrics *metric.Metrics, now func() time.Time) *Breaker {
	return &Breaker{
		operationType: operationType,
		cfg:           cfg.withDefaults(),
		logger:        logger,
		metrics:       metrics,
		now:           now,
	}
}

// Allow reports whether a request may proceed. When the breaker is open past
// its recovery timeout it transitions to half-open and lets the request
// through as a trial call. A rejection returns a *errors.CircuitOpenError
// carrying the breaker state, distinguishable from the operation's own
// errors.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.lastFailureTime) >= b.cfg.RecoveryTimeout {
			b.transition(StateHalfOpen)
			b.successCount = 0
		} else {
			b.metrics.RecordBreakerRejection(b.operationType)
			return &reserrors.CircuitOpenError{
				OperationType: b.operationType,
				State:         b.state.String(),
			}
		}
	}

	b.totalRequests++
	return nil
}

// RecordSuccess feeds a successful outcome into the breaker.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if b.failureCount > 0 {
			b.failureCount--
		}
	case StateHalfOpen:
		b.successCount++
		if b.successCount >= b.cfg.HalfOpenSuccesses {
			b.transition(StateClosed)
			b.failureCount = 0
		}
	case StateOpen:
		// A success while open means the caller raced a transition;
		// nothing to adjust.
	}
}

// RecordFailure feeds a failed outcome into the breaker.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failureCount++
		if b.failureCount >= b.cfg.FailureThreshold {
			b.lastFailureTime = b.now()
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		// Single strike: one trial failure reopens immediately.
		b.lastFailureTime = b.now()
		b.transition(StateOpen)
	case StateOpen:
		b.lastFailureTime = b.now()
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Counts returns a snapshot of the breaker's counters.
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Counts{
		State:           b.state,
		Failures:        b.failureCount,
		Successes:       b.successCount,
		TotalRequests:   b.totalRequests,
		LastFailureTime: b.lastFailureTime,
	}
}

// transition moves the breaker to a new state. Caller must hold b.mu.
func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.logger.Info("circuit breaker state change",
		"operation_type", b.operationType,
		"from", from.String(),
		"to", to.String(),
		"failures", b.failureCount)
	b.metrics.RecordBreakerTransition(b.operationType, from.String(), to.String())
	b.metrics.RecordBreakerState(b.operationType, int(to))
}
