package escalate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/resilience/classify"
	"github.com/c360/resilience/metric"
	"github.com/c360/resilience/notify"
)

// cooldownKey scopes suppression to one rule firing for one operation, so a
// noisy payment endpoint never silences alerts for an unrelated service.
type cooldownKey struct {
	rule      string
	operation string
}

// Engine evaluates escalation rules and dispatches notifications for the
// ones that fire. Safe for concurrent use.
type Engine struct {
	channels *notify.Registry
	logger   *slog.Logger
	metrics  *metric.Metrics
	now      func() time.Time
	freq     *kindFrequency

	mu        sync.Mutex
	rules     []Rule
	cooldowns map[cooldownKey]time.Time
	hist      history

	evaluations int64
	escalated   int64
	suppressed  int64
	noMatch     int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithHistoryCap overrides how many escalation records are retained.
func WithHistoryCap(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.hist.cap = capacity
		}
	}
}

// WithRules replaces the default rule set at construction time.
func WithRules(rules []Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// NewEngine creates an escalation engine dispatching through channels. A nil
// registry is allowed; matched rules then record empty outcomes.
func NewEngine(channels *notify.Registry, opts ...Option) *Engine {
	e := &Engine{
		channels:  channels,
		now:       time.Now,
		cooldowns: make(map[cooldownKey]time.Time),
		hist:      history{cap: defaultHistoryCap},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.freq = newKindFrequency(highFrequencyWindow, e.now)
	if e.rules == nil {
		e.rules = e.defaultRules()
	}
	return e
}

// SetRules replaces the active rule set.
func (e *Engine) SetRules(rules []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append([]Rule(nil), rules...)
}

// AddRule appends a rule to the active set. Rule names must be unique.
func (e *Engine) AddRule(rule Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("escalate.AddRule: rule must have a name")
	}
	if rule.Condition == nil {
		return fmt.Errorf("escalate.AddRule: rule %q must have a condition", rule.Name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.rules {
		if existing.Name == rule.Name {
			return fmt.Errorf("escalate.AddRule: rule %q already exists", rule.Name)
		}
	}
	e.rules = append(e.rules, rule)
	return nil
}

// Evaluate runs every rule against the failure, picks the lowest-priority
// match, applies the cooldown for its (rule, operation) key and dispatches
// its channels. No match and cooldown suppression are normal results, not
// errors.
func (e *Engine) Evaluate(ctx context.Context, err error, cls classify.Classification, ectx Context) Result {
	// The current failure counts toward its own kind's burst window.
	e.freq.observe(cls.Kind)

	matches := e.matchRules(err, cls, ectx)

	e.mu.Lock()
	e.evaluations++
	if len(matches) == 0 {
		e.noMatch++
		e.mu.Unlock()
		e.metrics.RecordEscalation("none", LevelNone.String(), "no_match")
		return Result{Reason: ReasonNoRuleMatched}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority < matches[j].Priority
	})
	primary := matches[0]

	// Check-and-refresh under one lock so concurrent evaluations of the
	// same failure cannot both slip through the cooldown.
	key := cooldownKey{rule: primary.Name, operation: ectx.Operation}
	now := e.now()
	if expiry, ok := e.cooldowns[key]; ok && now.Before(expiry) {
		e.suppressed++
		e.mu.Unlock()
		e.metrics.RecordEscalation(primary.Name, primary.Level.String(), "suppressed")
		e.logger.Debug("escalation suppressed by cooldown",
			"rule", primary.Name, "operation", ectx.Operation, "until", expiry)
		return Result{Level: primary.Level, Rule: primary.Name, Reason: ReasonCooldown}
	}
	e.cooldowns[key] = now.Add(primary.Cooldown)
	e.mu.Unlock()

	summary := sanitizeSummary(err)
	msg := notify.Message{
		Summary:   summary,
		Detail:    fmt.Sprintf("kind=%s severity=%s confidence=%.2f", cls.Kind, cls.Severity, cls.Confidence),
		Level:     primary.Level.String(),
		Rule:      primary.Name,
		Operation: ectx.Operation,
		Timestamp: now,
		Metadata:  ectx.Metadata,
	}

	var outcomes []notify.Outcome
	if e.channels != nil {
		outcomes = e.channels.Dispatch(ctx, primary.Channels, msg)
	}
	success := true
	for _, o := range outcomes {
		if !o.Success {
			success = false
			break
		}
	}

	rec := Record{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Operation:      ectx.Operation,
		ErrorSummary:   summary,
		Classification: cls,
		Rule:           primary.Name,
		Level:          primary.Level,
		Outcomes:       outcomes,
		Success:        success,
	}

	e.mu.Lock()
	e.escalated++
	e.hist.append(rec)
	e.mu.Unlock()

	e.metrics.RecordEscalation(primary.Name, primary.Level.String(), "escalated")
	e.logger.Info("escalation dispatched",
		"rule", primary.Name,
		"level", primary.Level,
		"operation", ectx.Operation,
		"channels", len(primary.Channels),
		"success", success,
		"record_id", rec.ID)

	return Result{
		Escalated: true,
		Level:     primary.Level,
		Rule:      primary.Name,
		Outcomes:  outcomes,
		Success:   success,
		RecordID:  rec.ID,
	}
}

// matchRules evaluates every rule condition, recovering from panics so one
// bad rule cannot take down the failure path it is meant to report on.
func (e *Engine) matchRules(err error, cls classify.Classification, ectx Context) []Rule {
	e.mu.Lock()
	rules := append([]Rule(nil), e.rules...)
	e.mu.Unlock()

	matches := make([]Rule, 0, 2)
	for _, rule := range rules {
		if rule.Condition == nil {
			continue
		}
		if e.safeMatch(rule, err, cls, ectx) {
			matches = append(matches, rule)
		}
	}
	return matches
}

func (e *Engine) safeMatch(rule Rule, err error, cls classify.Classification, ectx Context) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
			e.logger.Error("escalation rule condition panicked",
				"rule", rule.Name, "panic", r)
		}
	}()
	return rule.Condition(err, cls, ectx)
}

// PruneCooldowns drops expired cooldown entries. Expiry is otherwise lazy;
// long-running processes with many distinct operations may call this
// periodically to reclaim memory.
func (e *Engine) PruneCooldowns() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	pruned := 0
	for key, expiry := range e.cooldowns {
		if !now.Before(expiry) {
			delete(e.cooldowns, key)
			pruned++
		}
	}
	return pruned
}

// History returns a copy of the retained escalation records, oldest first.
func (e *Engine) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.snapshot()
}

// Stats returns evaluation counters since construction.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Evaluations: e.evaluations,
		Escalated:   e.escalated,
		Suppressed:  e.suppressed,
		NoMatch:     e.noMatch,
		HistorySize: len(e.hist.records),
	}
}
