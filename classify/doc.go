// Package classify turns failures into structured Classifications: a kind
// from a closed taxonomy, an ordered severity, a confidence score and the
// retry policy defaults for that kind.
//
// Classification fuses four independent signal sources in fixed precedence,
// where a later source wins only with strictly greater confidence:
//
//  1. HTTP status code mapping
//  2. Platform error-code mapping (ECONNREFUSED, ENOMEM, ...)
//  3. Precompiled message pattern sets per kind (most distinct matches wins;
//     confidence grows with match count, capped at 0.95)
//  4. Caller-supplied kind hint
//
// Classify never fails: any internal fault degrades to an unknown/medium
// verdict with zero confidence, because classification sits on every error
// path and must not become a new error source. Verdicts are memoized in a
// bounded LRU keyed by the verdict-affecting inputs; cache eviction only
// repeats work, it never changes outcomes.
//
//	classifier := classify.New()
//	c := classifier.Classify(err, classify.Context{
//		Operation:     "sync-deploy",
//		OperationType: "deployment",
//		StatusCode:    503,
//	})
//	if c.Retryable { ... }
package classify
