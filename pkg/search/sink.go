package search

import (
	"sync"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Persister receives every match exactly once, from the worker that found it.
// Implementations must be safe for concurrent use.
type Persister interface {
	Persist(result generator.Result) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(result generator.Result) error

func (f PersisterFunc) Persist(result generator.Result) error { return f(result) }

// resultSink collects matches in discovery order. Matches are rare next to
// attempts, so a plain mutex is enough.
type resultSink struct {
	mu        sync.Mutex
	results   []generator.Result
	persister Persister
}

func newResultSink(p Persister) *resultSink {
	return &resultSink{persister: p}
}

// deliver appends a complete result and then persists it outside the lock.
func (s *resultSink) deliver(result generator.Result) error {
	s.mu.Lock()
	s.results = append(s.results, result)
	s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Persist(result); err != nil {
		return &PersistError{Address: result.Address, Err: err}
	}
	return nil
}

func (s *resultSink) snapshot() []generator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]generator.Result, len(s.results))
	copy(out, s.results)
	return out
}
