package search

import (
	"fmt"
	"sync/atomic"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/matcher"
)

// WorkerState is the lifecycle of one worker goroutine: Running until it
// returns, then Done. A worker that observes the stop signal finishes the
// iteration it is in and returns, so there is no separate stopping phase.
type WorkerState int32

const (
	StateRunning WorkerState = iota
	StateDone
)

func (s WorkerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// worker is one generate/match loop. Everything it touches besides its
// in-flight keypair is shared and owned by the Coordinator.
type worker struct {
	id       int
	gen      generator.KeyGenerator
	matcher  matcher.Matcher
	counters *Counters
	stop     *StopSignal
	sink     *resultSink
	hits     chan<- struct{}
	state    atomic.Int32
}

func (w *worker) State() WorkerState { return WorkerState(w.state.Load()) }

// run loops until the stop signal is observed or a fatal error occurs.
// The signal is checked once per iteration, so a worker exits at most one
// generate+match cycle after it is raised.
func (w *worker) run() error {
	w.state.Store(int32(StateRunning))
	defer w.state.Store(int32(StateDone))

	for {
		if w.stop.Raised() {
			return nil
		}

		kp, err := w.gen.Generate()
		if err != nil {
			return &GenerationError{Worker: w.id, Err: err}
		}

		attempt := w.counters.AddAttempt()

		if !w.matcher.Matches(kp.Address) {
			clear(kp.Secret)
			continue
		}

		privateKey, err := w.gen.EncodeSecret(kp.Secret)
		if err != nil {
			clear(kp.Secret)
			return &GenerationError{Worker: w.id, Err: fmt.Errorf("export secret of %s: %w", kp.Address, err)}
		}

		w.counters.AddMatch()
		result := generator.Result{
			Network:    w.gen.Network(),
			Address:    kp.Address,
			PrivateKey: privateKey,
			Secret:     kp.Secret,
			Attempt:    attempt,
			Worker:     w.id,
			Elapsed:    w.counters.Elapsed(),
		}
		if err := w.sink.deliver(result); err != nil {
			return err
		}

		// Wake the monitor so the limit check doesn't wait for the next tick.
		select {
		case w.hits <- struct{}{}:
		default:
		}
	}
}
