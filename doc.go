// Package resilience provides an error resilience pipeline for services
// that call unreliable dependencies: classify the failure, decide whether
// and how to retry it, shield the dependency behind a circuit breaker, and
// escalate to humans when automation runs out.
//
// # Architecture
//
// The pipeline is four cooperating engines, each usable on its own:
//
//   - classify: fuses error-message patterns, platform error codes,
//     transport status codes and caller hints into a confidence-scored
//     Classification that drives every downstream decision.
//   - breaker: per-operation-type three-state circuit breakers that shed
//     load from dependencies that keep failing.
//   - retry: executes operations with classification-driven backoff and
//     jitter behind the breakers.
//   - escalate: rule-based escalation with cooldown suppression,
//     dispatching rate-limited notifications through the notify channels.
//
// Supporting packages: errors (sentinel and structured pipeline errors),
// notify (notification channels: log, NATS, webhook), metric (Prometheus
// instrumentation), health (component health aggregation) and pkg/cache
// (the classifier's memoization LRU).
//
// # Usage
//
// A typical host wires the pipeline once and shares it:
//
//	classifier := classify.New(classify.WithMetrics(m))
//	breakers := breaker.NewRegistry(breaker.WithMetrics(m))
//	engine := retry.New(classifier, breakers, retry.WithMetrics(m))
//
//	err := engine.Execute(ctx, callPaymentAPI, retry.Options{
//		OperationName: "payment-api.charge",
//		OperationType: "payment-api",
//	})
//
// When Execute returns a *errors.RetryExhaustedError, the host hands the
// failure to an escalate.Engine, which decides who hears about it.
//
// All engines accept dependencies explicitly (loggers, metrics, clocks) and
// are safe for concurrent use. Nothing in this module installs global
// state.
package resilience
