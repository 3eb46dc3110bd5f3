// Package readiness provides the bounded-retry connectivity gate that blocks start-up until the
// backing store answers a lightweight probe.
//
// The retry policy is deliberately simple: a fixed number of attempts with a fixed,
// non-exponential delay between them. Every probe error is treated the same way, there is
// no distinction between transient and permanent failures.
//
//	ready, err := readiness.WaitForReady(ctx, probe,
//		readiness.WithMaxAttempts(30),
//		readiness.WithDelay(2*time.Second),
//	)
package readiness
