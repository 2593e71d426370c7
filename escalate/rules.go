package escalate

import (
	"time"

	"github.com/c360/resilience/classify"
)

// Context carries the call-site facts a rule condition may consult. All
// fields are optional; zero values simply never satisfy the conditions that
// read them.
type Context struct {
	// Operation is the logical operation name, e.g. "payment-api.charge".
	Operation string
	// OperationType groups operations for cooldown and breaker purposes.
	OperationType string
	// Environment is the deployment environment, e.g. "production".
	Environment string
	// RetryAttempt is how many retries already ran for this failure.
	RetryAttempt int
	// Metadata is copied verbatim into the notification message.
	Metadata map[string]string
}

// Condition reports whether a rule applies to the failure at hand.
// Conditions must be side-effect free; a panicking condition is recovered,
// logged and treated as not matching.
type Condition func(err error, cls classify.Classification, ectx Context) bool

// Rule pairs a condition with the level and channels to use when it fires.
type Rule struct {
	Name      string
	Condition Condition
	Level     Level
	// Channels are dispatched in order; a failing channel does not stop
	// the remaining ones.
	Channels []string
	// Cooldown suppresses repeat escalations of this rule for the same
	// operation within the window.
	Cooldown time.Duration
	// Priority orders competing matches; lower wins.
	Priority int
	// Immediate marks rules whose notifications must bypass batching in
	// downstream systems.
	Immediate bool
}

// Channel names the default rule set dispatches to. Hosts register their
// own notify.Channel implementations under these names, or replace the
// rules entirely.
const (
	DefaultChannelLog    = "log"
	DefaultChannelPager  = "pager"
	DefaultChannelChat   = "chat"
	DefaultChannelTicket = "ticket"
)

// Result reasons for non-escalated evaluations.
const (
	ReasonNoRuleMatched = "no_rule_matched"
	ReasonCooldown      = "cooldown_period"
)

// highFrequencyThreshold is the per-kind occurrence count that must be
// exceeded within highFrequencyWindow to fire the high-frequency rule.
const (
	highFrequencyThreshold = 10
	highFrequencyWindow    = 5 * time.Minute
)

// defaultRules is the built-in rule set. The high-frequency rule reads the
// engine's per-kind occurrence window, so the set is built per engine.
func (e *Engine) defaultRules() []Rule {
	return []Rule{
		{
			Name:      "critical-failure",
			Priority:  1,
			Level:     LevelCritical,
			Channels:  []string{DefaultChannelPager, DefaultChannelLog},
			Cooldown:  5 * time.Minute,
			Immediate: true,
			Condition: func(_ error, cls classify.Classification, _ Context) bool {
				return cls.Severity == classify.SeverityCritical ||
					cls.Kind == classify.KindAuthentication ||
					cls.Kind == classify.KindResource
			},
		},
		{
			Name:     "high-frequency",
			Priority: 2,
			Level:    LevelEngineering,
			Channels: []string{DefaultChannelChat, DefaultChannelLog},
			Cooldown: 10 * time.Minute,
			Condition: func(_ error, cls classify.Classification, _ Context) bool {
				return e.freq.count(cls.Kind) > highFrequencyThreshold
			},
		},
		{
			Name:     "retries-exhausted",
			Priority: 3,
			Level:    LevelSupport,
			Channels: []string{DefaultChannelTicket, DefaultChannelLog},
			Cooldown: 10 * time.Minute,
			Condition: func(_ error, cls classify.Classification, ectx Context) bool {
				return cls.Retryable && ectx.RetryAttempt >= cls.MaxRetries
			},
		},
		{
			Name:      "logic-errors",
			Priority:  4,
			Level:     LevelEngineering,
			Channels:  []string{DefaultChannelChat, DefaultChannelLog},
			Cooldown:  15 * time.Minute,
			Immediate: true,
			Condition: func(_ error, cls classify.Classification, _ Context) bool {
				return cls.Kind == classify.KindLogic
			},
		},
		{
			Name:     "low-confidence-unknown",
			Priority: 5,
			Level:    LevelMonitoring,
			Channels: []string{DefaultChannelLog},
			Cooldown: 30 * time.Minute,
			Condition: func(_ error, cls classify.Classification, _ Context) bool {
				return cls.Kind == classify.KindUnknown && cls.Confidence < 0.5
			},
		},
		{
			Name:      "production-severity",
			Priority:  6,
			Level:     LevelSupport,
			Channels:  []string{DefaultChannelTicket, DefaultChannelLog},
			Cooldown:  10 * time.Minute,
			Immediate: true,
			Condition: func(_ error, cls classify.Classification, ectx Context) bool {
				return ectx.Environment == "production" && cls.Severity > classify.SeverityLow
			},
		},
	}
}
