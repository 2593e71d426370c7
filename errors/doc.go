// Package errors provides the standardized error types produced by the
// resilience pipeline.
//
// Two wrapper flavors exist above the classified error taxonomy:
//
//   - CircuitOpenError: the operation was rejected before it ran because its
//     operation type's circuit breaker is open.
//   - RetryExhaustedError: the operation ran and failed repeatedly until the
//     retry budget was spent.
//
// Both retain the underlying cause via Unwrap and match their sentinel
// (ErrCircuitOpen, ErrRetryExhausted) with errors.Is, so callers can branch
// on the flavor without type assertions:
//
//	err := engine.Execute(ctx, op, opts)
//	switch {
//	case errors.Is(err, reserrors.ErrCircuitOpen):
//		// fast-failed, the operation never ran
//	case errors.Is(err, reserrors.ErrRetryExhausted):
//		// ran and failed repeatedly; escalate
//	}
//
// The Wrap helper produces consistently formatted contextual errors following
// the "component.method: action failed: cause" convention used across the
// pipeline.
package errors
