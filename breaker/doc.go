// Package breaker provides per-operation-type circuit breakers for the
// resilience pipeline.
//
// A Breaker is the classic three-state machine:
//
//	CLOSED ──(failures ≥ threshold)──► OPEN
//	OPEN ──(recovery timeout elapsed)──► HALF_OPEN
//	HALF_OPEN ──(one failure)──► OPEN
//	HALF_OPEN ──(3 consecutive successes)──► CLOSED
//
// The OPEN→HALF_OPEN transition is lazy: it happens on the next Allow check
// after the recovery timeout, not via a background timer. While CLOSED,
// sustained success decays the failure count toward zero so old failures do
// not linger.
//
// Breakers are keyed by operation type, not by call site, so every caller
// sharing an operation type shares fate detection. The Registry creates them
// lazily and idempotently; each breaker serializes its own transitions with
// its own mutex, never a global lock.
package breaker
