package classify

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/c360/resilience/metric"
	"github.com/c360/resilience/pkg/cache"
)

// maxKeyMessageLen bounds the message portion of the memoization key.
const maxKeyMessageLen = 200

// defaultCacheSize bounds the memoization cache.
const defaultCacheSize = 1024

// Classification is the structured verdict for one failure. It is never
// mutated after creation.
type Classification struct {
	Kind       Kind     `json:"kind"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"` // in [0,1]

	// Strategy is the advisory resolution approach from the policy table.
	// The retry engine is free to override it per caller policy.
	Strategy string `json:"strategy"`

	// Per-kind policy defaults.
	MaxRetries          int     `json:"max_retries"`
	BackoffMultiplier   float64 `json:"backoff_multiplier"`
	EscalationThreshold int     `json:"escalation_threshold"`
	Retryable           bool    `json:"retryable"`

	// MatchedSignals is ordered human-readable evidence for audit and
	// debugging. Never used in decisions.
	MatchedSignals []string `json:"matched_signals,omitempty"`
}

// Context carries caller-supplied hints about the failing call.
type Context struct {
	Operation     string
	OperationType string
	Environment   string

	// ErrorCode is a platform error code (errno name or similar) when the
	// caller has one.
	ErrorCode string

	// StatusCode is the transport/HTTP status when the failure came off
	// the wire. Zero means none.
	StatusCode int

	// KindHint is an explicit caller hint. KindUnknown means no hint.
	KindHint Kind

	// ProductionCritical marks the call as production-critical, escalating
	// severity.
	ProductionCritical bool

	// PriorRetries reports how many times this logical operation already
	// retried.
	PriorRetries int
}

// Classifier produces Classifications from failures. Safe for concurrent
// use. Construct with New.
type Classifier struct {
	logger  *slog.Logger
	metrics *metric.Metrics
	cache   *cache.LRU[Classification]

	mu       sync.Mutex
	byKind   [numKinds]int64
	total    int64
	failures int64 // internal classification faults degraded to unknown
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	metrics   *metric.Metrics
	cacheSize int
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCacheSize overrides the memoization cache capacity.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// New creates a Classifier. Pattern sets are already compiled at package
// init, so construction is cheap.
func New(opts ...Option) *Classifier {
	o := options{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Classifier{
		logger:  o.logger,
		metrics: o.metrics,
		cache:   cache.NewLRU[Classification](o.cacheSize),
	}
}

// Classify produces the Classification for err. It never fails: internal
// faults degrade to an unknown/medium verdict with zero confidence.
// Identical inputs always produce identical verdicts; results are memoized.
func (c *Classifier) Classify(err error, ctx Context) (result Classification) {
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.failures++
			c.mu.Unlock()
			c.logger.Error("classification fault, degrading to unknown",
				"panic", fmt.Sprint(r))
			result = degradedClassification()
			c.count(result)
		}
	}()

	if err == nil {
		result = degradedClassification()
		c.count(result)
		return result
	}

	key := cacheKey(err, ctx)
	if cached, ok := c.cache.Get(key); ok {
		c.metrics.RecordCacheHit()
		return cached
	}
	c.metrics.RecordCacheMiss()

	result = c.classify(err, ctx)
	c.cache.Set(key, result)
	c.count(result)
	return result
}

// classify runs the signal fusion. Later signals override earlier ones only
// with strictly greater confidence.
func (c *Classifier) classify(err error, ctx Context) Classification {
	message := err.Error()

	kind := KindUnknown
	confidence := 0.1
	var signals []string

	// Signal 1: transport/HTTP status code.
	if mapped, ok := statusCodeKinds[ctx.StatusCode]; ok {
		kind = mapped.kind
		confidence = mapped.confidence
		signals = append(signals,
			fmt.Sprintf("status code %d -> %s (%.2f)", ctx.StatusCode, mapped.kind, mapped.confidence))
	}

	// Signal 2: platform error code, from the context or embedded in the
	// message text.
	if code, mapped, ok := matchPlatformCode(ctx.ErrorCode, message); ok {
		signals = append(signals,
			fmt.Sprintf("error code %s -> %s (%.2f)", code, mapped.kind, mapped.confidence))
		if mapped.confidence > confidence {
			kind = mapped.kind
			confidence = mapped.confidence
		}
	}

	// Signal 3: message patterns, most distinct matches wins.
	if patternKind, patternConfidence, matched := matchPatterns(message); matched > 0 {
		signals = append(signals,
			fmt.Sprintf("%d message pattern(s) -> %s (%.2f)", matched, patternKind, patternConfidence))
		if patternConfidence > confidence {
			kind = patternKind
			confidence = patternConfidence
		}
	}

	// Signal 4: explicit caller hint.
	if ctx.KindHint != KindUnknown {
		const hintConfidence = 0.5
		signals = append(signals,
			fmt.Sprintf("caller hint -> %s (%.2f)", ctx.KindHint, hintConfidence))
		if hintConfidence > confidence {
			kind = ctx.KindHint
			confidence = hintConfidence
		}
	}

	policy := PolicyFor(kind)
	return Classification{
		Kind:                kind,
		Severity:            refineSeverity(policy.Severity, confidence, ctx),
		Confidence:          confidence,
		Strategy:            policy.Strategy,
		MaxRetries:          policy.MaxRetries,
		BackoffMultiplier:   policy.BackoffMultiplier,
		EscalationThreshold: policy.EscalationThreshold,
		Retryable:           policy.Retryable,
		MatchedSignals:      signals,
	}
}

// refineSeverity applies context escalation, then the low-confidence clamp.
// The clamp runs last on purpose: an uncertain classification must not claim
// extreme severity even for production-critical calls.
func refineSeverity(severity Severity, confidence float64, ctx Context) Severity {
	if ctx.ProductionCritical {
		severity = SeverityCritical
	}
	if ctx.PriorRetries > 5 && severity < SeverityHigh {
		severity = SeverityHigh
	}
	if confidence < 0.5 {
		severity = SeverityMedium
	}
	return severity
}

// matchPlatformCode checks the explicit error code first, then scans the
// message for known codes.
func matchPlatformCode(errorCode, message string) (string, codeMapping, bool) {
	if errorCode != "" {
		if mapped, ok := platformCodeKinds[strings.ToUpper(errorCode)]; ok {
			return strings.ToUpper(errorCode), mapped, true
		}
	}
	upper := strings.ToUpper(message)
	for _, code := range platformCodeOrder {
		if strings.Contains(upper, code) {
			return code, platformCodeKinds[code], true
		}
	}
	return "", codeMapping{}, false
}

// matchPatterns counts distinct pattern matches per kind and returns the
// winner. Confidence is 0.6 for a single match plus 0.15 per additional
// distinct match, capped at 0.95. Ties keep the earlier kind in the
// precedence order.
func matchPatterns(message string) (Kind, float64, int) {
	bestKind := KindUnknown
	bestMatches := 0

	for _, kp := range messagePatterns {
		matches := 0
		for _, pattern := range kp.patterns {
			if pattern.MatchString(message) {
				matches++
			}
		}
		if matches > bestMatches {
			bestKind = kp.kind
			bestMatches = matches
		}
	}

	if bestMatches == 0 {
		return KindUnknown, 0, 0
	}
	confidence := 0.6 + 0.15*float64(bestMatches-1)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return bestKind, confidence, bestMatches
}

// degradedClassification is the verdict used when classification itself
// faulted or had nothing to classify.
func degradedClassification() Classification {
	policy := PolicyFor(KindUnknown)
	return Classification{
		Kind:                KindUnknown,
		Severity:            SeverityMedium,
		Confidence:          0,
		Strategy:            policy.Strategy,
		MaxRetries:          policy.MaxRetries,
		BackoffMultiplier:   policy.BackoffMultiplier,
		EscalationThreshold: policy.EscalationThreshold,
		Retryable:           policy.Retryable,
	}
}

// cacheKey derives the memoization key from every input that can change the
// verdict: truncated message, error code, status code and the context fields
// feeding severity refinement.
func cacheKey(err error, ctx Context) string {
	message := err.Error()
	if len(message) > maxKeyMessageLen {
		message = message[:maxKeyMessageLen]
	}

	var b strings.Builder
	b.Grow(len(message) + 48)
	b.WriteString(message)
	b.WriteByte('|')
	b.WriteString(ctx.ErrorCode)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(ctx.StatusCode))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(ctx.KindHint)))
	b.WriteByte('|')
	if ctx.ProductionCritical {
		b.WriteByte('p')
	}
	if ctx.PriorRetries > 5 {
		b.WriteByte('r')
	}
	return b.String()
}

// count updates per-kind statistics.
func (c *Classifier) count(result Classification) {
	c.mu.Lock()
	c.byKind[result.Kind]++
	c.total++
	c.mu.Unlock()
	c.metrics.RecordClassification(result.Kind.String(), result.Severity.String())
}

// Stats is a read-only snapshot of classifier activity.
type Stats struct {
	Total          int64            `json:"total"`
	ByKind         map[string]int64 `json:"by_kind"`
	InternalFaults int64            `json:"internal_faults"`
	CacheHits      int64            `json:"cache_hits"`
	CacheMisses    int64            `json:"cache_misses"`
	CacheHitRate   float64          `json:"cache_hit_rate"`
}

// Stats returns a snapshot of classification counts and cache performance.
func (c *Classifier) Stats() Stats {
	c.mu.Lock()
	byKind := make(map[string]int64, numKinds)
	for k := 0; k < numKinds; k++ {
		if c.byKind[k] > 0 {
			byKind[Kind(k).String()] = c.byKind[k]
		}
	}
	stats := Stats{
		Total:          c.total,
		ByKind:         byKind,
		InternalFaults: c.failures,
	}
	c.mu.Unlock()

	cacheStats := c.cache.Stats()
	stats.CacheHits = cacheStats.Hits()
	stats.CacheMisses = cacheStats.Misses()
	stats.CacheHitRate = cacheStats.HitRate()
	return stats
}

// ClearCache drops all memoized verdicts. Purely a performance lever:
// subsequent classifications repeat the work but produce identical results.
func (c *Classifier) ClearCache() {
	c.cache.Clear()
}
