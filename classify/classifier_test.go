package classify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ConnectionRefused(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("Connection refused: ECONNREFUSED"), Context{
		Operation:     "charge",
		OperationType: "payment-api",
	})

	assert.Equal(t, KindNetwork, result.Kind)
	assert.GreaterOrEqual(t, result.Confidence, 0.9)
	assert.True(t, result.Retryable)
	assert.Equal(t, 3, result.MaxRetries)
	assert.NotEmpty(t, result.MatchedSignals)
}

func TestClassify_Idempotent(t *testing.T) {
	c := New()
	err := errors.New("dial tcp: connection refused")
	ctx := Context{OperationType: "payment-api", StatusCode: 503}

	first := c.Classify(err, ctx)
	second := c.Classify(err, ctx)

	assert.Equal(t, first, second, "repeated classification must be field-for-field identical")
}

func TestClassify_IdempotentAcrossCacheClear(t *testing.T) {
	c := New()
	err := errors.New("unexpected token '}' at line 3")
	ctx := Context{OperationType: "codegen"}

	first := c.Classify(err, ctx)
	c.ClearCache()
	second := c.Classify(err, ctx)

	assert.Equal(t, first, second, "cache eviction must never change outcomes")
}

func TestClassify_ConfidenceMonotonicity(t *testing.T) {
	c := New()

	one := c.Classify(errors.New("connection refused"), Context{})
	three := c.Classify(errors.New("connection refused: connection reset, request timed out"), Context{})

	require.Equal(t, KindNetwork, one.Kind)
	require.Equal(t, KindNetwork, three.Kind)
	assert.GreaterOrEqual(t, three.Confidence, one.Confidence,
		"more distinct pattern matches must not lower confidence")
}

func TestClassify_PatternConfidenceCap(t *testing.T) {
	c := New()

	// Five distinct network patterns in one message.
	result := c.Classify(errors.New(
		"connection refused, connection reset, timed out, no route to host, broken pipe"), Context{})

	assert.Equal(t, KindNetwork, result.Kind)
	assert.LessOrEqual(t, result.Confidence, 0.95)
}

func TestClassify_StatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuthentication},
		{403, KindAuthentication},
		{400, KindValidation},
		{422, KindValidation},
		{429, KindResource},
		{502, KindAPI},
		{503, KindAPI},
		{504, KindNetwork},
	}

	c := New()
	for _, tt := range tests {
		result := c.Classify(fmt.Errorf("request failed with status %d", tt.status),
			Context{StatusCode: tt.status})
		assert.Equal(t, tt.kind, result.Kind, "status %d", tt.status)
	}
}

func TestClassify_StatusCodeBeatsWeakerPattern(t *testing.T) {
	c := New()

	// 401 maps at 0.95; the single "api error" pattern would score 0.6.
	result := c.Classify(errors.New("api error"), Context{StatusCode: 401})
	assert.Equal(t, KindAuthentication, result.Kind)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestClassify_LaterSignalNeedsStrictlyGreaterConfidence(t *testing.T) {
	c := New()

	// Status 429 -> resource 0.9. A kind hint at 0.5 must not override.
	result := c.Classify(errors.New("slow down"), Context{
		StatusCode: 429,
		KindHint:   KindNetwork,
	})
	assert.Equal(t, KindResource, result.Kind)
}

func TestClassify_HintUsedWhenNothingStronger(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("something odd happened"), Context{KindHint: KindDependency})
	assert.Equal(t, KindDependency, result.Kind)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestClassify_UnknownWhenNoSignalFires(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("zorp"), Context{})
	assert.Equal(t, KindUnknown, result.Kind)
	assert.Less(t, result.Confidence, 0.5)
	assert.Equal(t, SeverityMedium, result.Severity)
}

func TestClassify_ErrorCodeFromContext(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("allocation failure"), Context{ErrorCode: "ENOMEM"})
	assert.Equal(t, KindResource, result.Kind)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestClassify_NilErrorDegrades(t *testing.T) {
	c := New()

	result := c.Classify(nil, Context{})
	assert.Equal(t, KindUnknown, result.Kind)
	assert.Equal(t, SeverityMedium, result.Severity)
	assert.Zero(t, result.Confidence)
}

func TestClassify_NeverPanics(t *testing.T) {
	c := New()

	var result Classification
	assert.NotPanics(t, func() {
		result = c.Classify(panickyError{}, Context{})
	})
	assert.Equal(t, KindUnknown, result.Kind)
	assert.Equal(t, SeverityMedium, result.Severity)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, int64(1), c.Stats().InternalFaults)
}

// panickyError simulates a failure source whose Error method itself faults.
type panickyError struct{}

func (panickyError) Error() string { panic("broken error value") }

func TestRefineSeverity_ProductionCritical(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("connection refused"), Context{
		ProductionCritical: true,
	})
	assert.Equal(t, SeverityCritical, result.Severity)
}

func TestRefineSeverity_ManyPriorRetries(t *testing.T) {
	c := New()

	result := c.Classify(errors.New("connection refused"), Context{PriorRetries: 6})
	assert.Equal(t, SeverityHigh, result.Severity)
}

func TestRefineSeverity_LowConfidenceClampWinsOverProduction(t *testing.T) {
	c := New()

	// No signal fires: confidence stays below 0.5, so the clamp to medium
	// outranks the production-critical escalation.
	result := c.Classify(errors.New("zorp"), Context{ProductionCritical: true})
	assert.Equal(t, SeverityMedium, result.Severity)
	assert.Less(t, result.Confidence, 0.5)
}

func TestClassify_CacheHitStatistics(t *testing.T) {
	c := New()
	err := errors.New("connection refused")

	c.Classify(err, Context{})
	c.Classify(err, Context{})

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.ByKind["network"])
}

func TestClassify_DifferentContextDifferentCacheEntry(t *testing.T) {
	c := New()
	err := errors.New("connection refused")

	plain := c.Classify(err, Context{})
	critical := c.Classify(err, Context{ProductionCritical: true})

	assert.Equal(t, SeverityMedium, plain.Severity)
	assert.Equal(t, SeverityCritical, critical.Severity,
		"verdict-affecting context must not be conflated by the cache")
}
