// Package retry drives repeated execution of fallible operations, wiring
// together the circuit breaker registry (fast-fail protection) and the
// classifier (retry eligibility and backoff hints).
//
// Per attempt the engine asks the operation type's breaker for permission,
// runs the operation under the breaker's supervision, and on failure
// classifies the error to decide whether another attempt is worthwhile.
// The first attempt is attempt 0 and is never delayed; subsequent attempts
// back off per the configured strategy, scaled by the classification's own
// backoff multiplier, capped at MaxDelay, and jittered by a uniform factor
// in [0.5, 1.0) to avoid synchronized retry storms.
//
// The inter-attempt delay is the engine's only suspension point and it is
// cancellable: when the caller's context fires during the delay the engine
// abandons the loop and propagates a cancellation-flavored error, distinct
// from retry exhaustion.
//
//	engine := retry.New(classifier, breakers)
//	err := engine.Execute(ctx, op, retry.Options{
//		MaxRetries:    3,
//		OperationType: "payment-api",
//		OperationName: "charge",
//	})
//
// On exhaustion callers receive a *errors.RetryExhaustedError enriched with
// attempt accounting, ready to hand to the escalation engine.
package retry
