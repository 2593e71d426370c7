// Package health provides health status tracking for the resilience
// pipeline's shared state.
//
// The circuit breaker registry exports one Status per operation type
// (closed = healthy, half-open = degraded, open = unhealthy) into a Monitor
// owned by the hosting application, which can aggregate and surface them on
// its own health endpoint.
package health
