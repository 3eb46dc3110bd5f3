package helper

import (
	"context"
	"sync"
	"time"
)

// SleeperSpy records requested sleeps without blocking.
// If CancelAfter is > 0, the given cancel func is called on that sleep call, simulating an interrupt.
type SleeperSpy struct {
	mu          sync.Mutex
	durations   []time.Duration
	CancelAfter int
	Cancel      context.CancelFunc
}

// NewSleeperSpy creates a SleeperSpy that never cancels.
func NewSleeperSpy() *SleeperSpy {
	return &SleeperSpy{}
}

// NewCancelingSleeperSpy creates a SleeperSpy that calls cancel on the n-th sleep.
func NewCancelingSleeperSpy(n int, cancel context.CancelFunc) *SleeperSpy {
	return &SleeperSpy{CancelAfter: n, Cancel: cancel}
}

// Sleep satisfies orders.Sleeper.
func (s *SleeperSpy) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.durations = append(s.durations, d)
	calls := len(s.durations)
	s.mu.Unlock()

	if s.CancelAfter > 0 && calls == s.CancelAfter && s.Cancel != nil {
		s.Cancel()
	}

	return ctx.Err()
}

// Calls returns the number of sleeps.
func (s *SleeperSpy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durations)
}

// Durations returns a copy of all requested durations.
func (s *SleeperSpy) Durations() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	durations := make([]time.Duration, len(s.durations))
	copy(durations, s.durations)

	return durations
}
