// Package escalate decides whether a failure must be surfaced to a human or
// external channel, and dispatches the notification when it must.
//
// Every registered rule's condition is evaluated against the error, its
// classification and the call context; all matches are sorted by ascending
// priority and the winner becomes the primary rule. Before acting, the
// engine checks the (rule, operation) cooldown key: a repeat inside the
// rule's cooldown window is suppressed with reason "cooldown_period" so a
// single recurring failure cannot cause a notification storm. Dispatch then
// walks the rule's channels in order through the notify registry, which
// enforces per-channel rate limits.
//
// "No rule matched" and "suppressed by cooldown" are normal outcomes
// reported in the Result, never errors. A rule condition that panics is
// logged and skipped; evaluation continues with the remaining rules.
//
// The engine ships with a default rule set (see DefaultChannel* constants
// for the channel names it expects); SetRules replaces it, AddRule augments
// it.
package escalate
