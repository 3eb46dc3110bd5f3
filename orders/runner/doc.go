// Package runner drives the order generator end to end.
//
// A Runner waits for the store through the readiness gate, opens exactly one Writer for the whole run,
// and then loops: generate an order, insert it, report it, pace. The loop ends when the context is
// canceled, when the optional order limit is reached, or when a write fails. Once opened, the Writer
// is closed exactly once on every one of those paths.
//
// Lifecycle:
//
//	Starting -> Aborted                                (store never became ready)
//	Starting -> Connected -> Running -> Stopping -> Closed
package runner
