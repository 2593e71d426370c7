package retry

import (
	"time"

	"github.com/c360/resilience/classify"
)

// Strategy selects the backoff shape between attempts.
type Strategy int

const (
	// StrategyExponential multiplies the base delay by
	// BackoffMultiplier^(attempt-1). Default.
	StrategyExponential Strategy = iota
	// StrategyLinear multiplies the base delay by the attempt number.
	StrategyLinear
	// StrategyFixed uses the base delay unchanged.
	StrategyFixed
	// StrategyImmediate retries without delay.
	StrategyImmediate
)

// String returns the lowercase strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyExponential:
		return "exponential"
	case StrategyLinear:
		return "linear"
	case StrategyFixed:
		return "fixed"
	case StrategyImmediate:
		return "immediate"
	default:
		return "exponential"
	}
}

// Defaults for Options fields left zero.
const (
	DefaultMaxRetries        = 3
	DefaultBaseDelay         = time.Second
	DefaultBackoffMultiplier = 2.0
	DefaultMaxDelay          = 30 * time.Second
	DefaultOperationType     = "default"
)

// RetryCondition overrides the engine's retry eligibility policy. When set
// it alone decides whether a failed attempt is retried (the attempt budget
// still applies).
type RetryCondition func(err error, cls classify.Classification, attempt int) bool

// Options is the per-call configuration surface of the engine.
type Options struct {
	// MaxRetries is the retry budget beyond the first attempt.
	MaxRetries int

	// Strategy is the backoff shape.
	Strategy Strategy

	// BaseDelay seeds the delay computation.
	BaseDelay time.Duration

	// BackoffMultiplier drives exponential growth.
	BackoffMultiplier float64

	// MaxDelay caps every computed delay.
	MaxDelay time.Duration

	// OperationType scopes the circuit breaker and escalation rules.
	OperationType string

	// OperationName identifies this specific operation in errors, history
	// and logs.
	OperationName string

	// RetryCondition, when set, replaces the kind/pattern eligibility
	// policy.
	RetryCondition RetryCondition

	// DisableJitter turns off the randomized delay scaling. Jitter is on
	// by default to avoid synchronized retry storms; disable it only for
	// deterministic tests.
	DisableJitter bool
}

// withDefaults fills unset fields. MaxRetries keeps explicit zero only via
// a negative value, matching the "0 retries" caller intent being expressed
// through classification policy or RetryCondition instead.
func (o Options) withDefaults() Options {
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.BackoffMultiplier <= 0 {
		o.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultMaxDelay
	}
	if o.OperationType == "" {
		o.OperationType = DefaultOperationType
	}
	return o
}
