package retry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/resilience/breaker"
	"github.com/c360/resilience/classify"
	reserrors "github.com/c360/resilience/errors"
	"github.com/c360/resilience/metric"
)

// Operation is a fallible unit of work. Per-attempt timeouts are the
// operation's own responsibility; the ctx carries the caller's overall
// deadline.
type Operation func(ctx context.Context) error

// terminalPatterns mark failures no amount of retrying can fix, regardless
// of classified kind.
var terminalPatterns = []string{
	"invalid credentials",
	"forbidden",
	"not found",
	"bad request",
}

// Engine executes operations with classification-driven retries behind
// per-operation-type circuit breakers. Safe for concurrent use; the
// sleep-then-retry loop suspends only the calling goroutine.
type Engine struct {
	classifier *classify.Classifier
	breakers   *breaker.Registry
	logger     *slog.Logger
	metrics    *metric.Metrics
	history    *history
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

// WithHistoryCap overrides the bounded history size.
func WithHistoryCap(capacity int) Option {
	return func(e *Engine) { e.history = newHistory(capacity) }
}

// New creates an Engine around a classifier and a breaker registry. Both are
// owned by the hosting application and may be shared with other engines.
func New(classifier *classify.Classifier, breakers *breaker.Registry, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		breakers:   breakers,
		history:    newHistory(defaultHistoryCap),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Execute runs op until it succeeds, the retry budget is spent, the breaker
// rejects it, or ctx is cancelled. The returned error is nil on success, a
// *errors.CircuitOpenError on rejection, a cancellation-flavored error when
// ctx fired, or a *errors.RetryExhaustedError wrapping the final failure.
func (e *Engine) Execute(ctx context.Context, op Operation, opts Options) error {
	if op == nil {
		return reserrors.ErrNoOperation
	}
	o := opts.withDefaults()
	b := e.breakers.Get(o.OperationType)
	start := time.Now()

	// attempt 0 is the first execution and is never delayed.
	attempt := 0
	for {
		if err := b.Allow(); err != nil {
			e.metrics.RecordRetryAttempt(o.OperationType, "rejected")
			e.logger.Warn("operation rejected by circuit breaker",
				"operation", o.OperationName,
				"operation_type", o.OperationType)
			e.record(o, false, attempt, start, err)
			return err
		}

		err := op(ctx)
		if err == nil {
			b.RecordSuccess()
			e.metrics.RecordRetryAttempt(o.OperationType, "success")
			e.record(o, true, attempt+1, start, nil)
			return nil
		}
		b.RecordFailure()
		e.metrics.RecordRetryAttempt(o.OperationType, "failure")

		// A failure caused by the caller's own cancellation is not a
		// retry candidate; surface it as a cancellation.
		if ctx.Err() != nil {
			e.record(o, false, attempt+1, start, err)
			return fmt.Errorf("retry abandoned for %q: %w", e.opName(o), ctx.Err())
		}

		cls := e.classifier.Classify(err, classify.Context{
			Operation:     o.OperationName,
			OperationType: o.OperationType,
			PriorRetries:  attempt,
		})

		if !e.shouldRetry(err, cls, attempt, o) {
			exhausted := &reserrors.RetryExhaustedError{
				OperationName: o.OperationName,
				OperationType: o.OperationType,
				TotalAttempts: attempt + 1,
				MaxRetries:    o.MaxRetries,
				Kind:          cls.Kind.String(),
				Err:           err,
			}
			e.logger.Warn("retries exhausted",
				"operation", e.opName(o),
				"operation_type", o.OperationType,
				"attempts", attempt+1,
				"kind", cls.Kind.String())
			e.record(o, false, attempt+1, start, err)
			return exhausted
		}

		attempt++
		delay := backoffDelay(o, attempt, cls.BackoffMultiplier)
		if !o.DisableJitter {
			delay = jitter(delay)
		}
		e.metrics.RecordRetryDelay(o.OperationType, delay)
		e.logger.Debug("retrying operation",
			"operation", e.opName(o),
			"attempt", attempt,
			"delay", delay,
			"kind", cls.Kind.String())

		if err := sleep(ctx, delay); err != nil {
			e.record(o, false, attempt, start, err)
			return fmt.Errorf("retry cancelled during backoff before attempt %d of %q: %w",
				attempt+1, e.opName(o), err)
		}
	}
}

// ExecuteWithResult runs an operation that produces a value, with the same
// retry semantics as Engine.Execute.
func ExecuteWithResult[T any](ctx context.Context, e *Engine, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
		var innerErr error
		result, innerErr = op(ctx)
		return innerErr
	}, opts)
	return result, err
}

// shouldRetry decides eligibility for one more attempt. A caller-supplied
// RetryCondition replaces the kind/pattern policy; the attempt budget always
// applies.
func (e *Engine) shouldRetry(err error, cls classify.Classification, attempt int, o Options) bool {
	if attempt >= o.MaxRetries {
		return false
	}
	if o.RetryCondition != nil {
		return o.RetryCondition(err, cls, attempt)
	}
	if !cls.Retryable {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, pattern := range terminalPatterns {
		if strings.Contains(message, pattern) {
			return false
		}
	}
	return true
}

// sleep waits for the delay or the context, whichever fires first.
func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Engine) opName(o Options) string {
	if o.OperationName != "" {
		return o.OperationName
	}
	return o.OperationType
}

func (e *Engine) record(o Options, success bool, attempts int, start time.Time, err error) {
	r := Record{
		OperationName: e.opName(o),
		OperationType: o.OperationType,
		Success:       success,
		Attempts:      attempts,
		Duration:      time.Since(start),
	}
	if err != nil {
		r.ErrorSummary = err.Error()
	}
	e.history.append(r)
}

// History returns a copy of the bounded retry history log.
func (e *Engine) History() []Record {
	return e.history.snapshot()
}

// Stats returns a read-only summary of engine activity.
func (e *Engine) Stats() Stats {
	return e.history.stats()
}
