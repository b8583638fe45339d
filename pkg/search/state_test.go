package search

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStopSignalRaisedOnce(t *testing.T) {
	s := NewStopSignal()
	if s.Raised() {
		t.Fatal("new signal is already raised")
	}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Raise() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := wins.Load(); n != 1 {
		t.Errorf("Raise reported first %d times, want 1", n)
	}
	if !s.Raised() {
		t.Error("signal not raised")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestCountersConcurrentIncrements(t *testing.T) {
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.AddAttempt()
				if j%10 == 0 {
					c.AddMatch()
				}
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if s.Attempts != 8000 {
		t.Errorf("Attempts = %d, want 8000", s.Attempts)
	}
	if s.Matches != 800 {
		t.Errorf("Matches = %d, want 800", s.Matches)
	}
	if s.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", s.Elapsed)
	}
}

func TestSpeedTracker(t *testing.T) {
	tr := NewSpeedTracker(5 * time.Second)
	if r := tr.Rate(); r != 0 {
		t.Fatalf("empty tracker rate = %v", r)
	}

	base := time.Unix(1700000000, 0)
	tr.Add(base, 0)
	if r := tr.Rate(); r != 0 {
		t.Errorf("single sample rate = %v, want 0", r)
	}

	tr.Add(base.Add(time.Second), 1000)
	tr.Add(base.Add(2*time.Second), 3000)
	if r := tr.Rate(); r != 1500 {
		t.Errorf("rate = %v, want 1500", r)
	}

	// Samples older than the window fall out: only 8s and 9s remain.
	tr.Add(base.Add(8*time.Second), 10000)
	tr.Add(base.Add(9*time.Second), 10500)
	if r := tr.Rate(); r != 500 {
		t.Errorf("windowed rate = %v, want 500", r)
	}
}

func TestWorkerStateString(t *testing.T) {
	tests := map[WorkerState]string{
		StateRunning:   "running",
		StateDone:      "done",
		WorkerState(9): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
