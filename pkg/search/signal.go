package search

import (
	"sync"
	"sync/atomic"
)

// StopSignal is the broadcast that tells every worker to finish. It goes from
// unset to set exactly once and never reverts.
type StopSignal struct {
	raised atomic.Bool
	once   sync.Once
	done   chan struct{}
}

// NewStopSignal returns an unset signal.
func NewStopSignal() *StopSignal {
	return &StopSignal{done: make(chan struct{})}
}

// Raise sets the signal. It reports whether this call was the one that set it.
func (s *StopSignal) Raise() bool {
	first := false
	s.once.Do(func() {
		s.raised.Store(true)
		close(s.done)
		first = true
	})
	return first
}

// Raised is the hot-path check: a single atomic load.
func (s *StopSignal) Raised() bool { return s.raised.Load() }

// Done is closed once the signal is raised.
func (s *StopSignal) Done() <-chan struct{} { return s.done }
