// Package notify provides the notification channels and dispatch layer used
// by the escalation engine.
//
// A Channel is an addressable sink (log, NATS subject, HTTP webhook) able to
// deliver an escalation message. Channels register with a Registry, each
// with an optional rate limit enforced by a fixed-capacity sliding-window
// counter: at most MaxPerWindow sends in any trailing Window, checked and
// recorded atomically per channel in O(1).
//
// Dispatch walks the requested channels in order. A channel over its limit
// is skipped and reported as a failed outcome without blocking the other
// channels; an unknown channel name likewise fails only its own outcome.
package notify
