// Package search runs the concurrent vanity-address search.
//
// A Coordinator spawns a fixed pool of workers that share one compiled
// matcher, one set of atomic counters and one stop signal. It samples the
// counters on a ticker, raises the stop signal once the match count reaches
// the limit, joins every worker and returns all matches found. Workers that
// were already mid-iteration when the signal went up may add a few more
// matches; those are returned too rather than discarded.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/matcher"
)

// DefaultInterval is how often the monitor samples the counters.
const DefaultInterval = 100 * time.Millisecond

// Config describes one search run.
type Config struct {
	Pattern  matcher.Spec  // Compiled once before any worker starts
	Limit    uint64        // Number of matches to collect, at least 1
	Workers  int           // Worker goroutines; 0 means runtime.NumCPU()
	Interval time.Duration // Monitor sampling period; 0 means DefaultInterval
}

// Reporter receives a progress snapshot on every monitor tick. It runs on
// the monitor goroutine and should return quickly.
type Reporter func(stats generator.Stats)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithPersister sets the collaborator that receives each match.
func WithPersister(p Persister) Option {
	return func(c *Coordinator) { c.persister = p }
}

// WithReporter sets the progress callback.
func WithReporter(r Reporter) Option {
	return func(c *Coordinator) { c.reporter = r }
}

// WithSpeedWindow sets the sliding window behind Stats().RecentRate.
func WithSpeedWindow(d time.Duration) Option {
	return func(c *Coordinator) { c.window = d }
}

// Coordinator owns the shared state of a search and drives its workers.
type Coordinator struct {
	gen       generator.KeyGenerator
	logger    *slog.Logger
	persister Persister
	reporter  Reporter
	window    time.Duration

	running atomic.Bool

	mu       sync.Mutex
	counters *Counters
	tracker  *SpeedTracker
	workers  []*worker
}

// New creates a Coordinator that searches keypairs from gen.
func New(gen generator.KeyGenerator, opts ...Option) *Coordinator {
	c := &Coordinator{
		gen:    gen,
		logger: slog.Default(),
		window: DefaultSpeedWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats returns the progress of the current or last run. It is safe to call
// from any goroutine and never blocks workers.
func (c *Coordinator) Stats() generator.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters == nil {
		return generator.Stats{}
	}
	stats := c.counters.Snapshot()
	stats.RecentRate = c.tracker.Rate()
	return stats
}

// WorkerStates reports the lifecycle state of each worker of the current or
// last run.
func (c *Coordinator) WorkerStates() []WorkerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	states := make([]WorkerState, len(c.workers))
	for i, w := range c.workers {
		states[i] = w.State()
	}
	return states
}

type stopReason string

const (
	reasonLimit    stopReason = "limit reached"
	reasonCanceled stopReason = "canceled"
	reasonFailure  stopReason = "worker failure"
)

// Run searches until cfg.Limit matches are found, ctx is done, or a worker
// fails. Invalid configuration and pattern errors are returned before any
// worker starts. In every other case Run returns the matches collected so
// far, which may exceed the limit, together with any error.
func (c *Coordinator) Run(ctx context.Context, cfg Config) ([]generator.Result, error) {
	workers, interval, err := c.validate(cfg)
	if err != nil {
		return nil, err
	}

	m, err := matcher.Compile(cfg.Pattern)
	if err != nil {
		var compileErr *matcher.CompileError
		if errors.As(err, &compileErr) {
			return nil, err
		}
		return nil, &ConfigError{Field: "pattern", Value: fmt.Sprintf("%q", cfg.Pattern.Pattern), Err: err}
	}

	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrRunning
	}
	defer c.running.Store(false)

	counters := NewCounters()
	stop := NewStopSignal()
	sink := newResultSink(c.persister)
	hits := make(chan struct{}, 1)

	pool := make([]*worker, workers)
	for i := range pool {
		pool[i] = &worker{
			id:       i,
			gen:      c.gen,
			matcher:  m,
			counters: counters,
			stop:     stop,
			sink:     sink,
			hits:     hits,
		}
	}

	c.mu.Lock()
	c.counters = counters
	c.tracker = NewSpeedTracker(c.window)
	c.workers = pool
	c.mu.Unlock()

	c.logger.Info("search started",
		"network", c.gen.Network().String(),
		"pattern", m.String(),
		"limit", cfg.Limit,
		"workers", workers)

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failErr  error
	)
	for _, w := range pool {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			if err := w.run(); err != nil {
				failOnce.Do(func() { failErr = err })
				c.logger.Error("worker failed", "worker", w.id, "err", err)
				stop.Raise()
			}
		}(w)
	}

	reason := c.monitor(ctx, cfg.Limit, interval, counters, stop, hits)
	stop.Raise()
	wg.Wait()

	final := c.sample(counters)
	results := sink.snapshot()

	c.logger.Info("search stopped",
		"reason", string(reason),
		"attempts", final.Attempts,
		"matches", final.Matches,
		"results", len(results),
		"elapsed", final.Elapsed.Round(time.Millisecond))

	if failErr != nil {
		return results, failErr
	}
	if reason == reasonCanceled {
		return results, fmt.Errorf("%w: %w", ErrCanceled, context.Cause(ctx))
	}
	return results, nil
}

func (c *Coordinator) validate(cfg Config) (workers int, interval time.Duration, err error) {
	if c.gen == nil {
		return 0, 0, &ConfigError{Field: "generator", Value: nil, Reason: "no key generator configured"}
	}
	if cfg.Limit == 0 {
		return 0, 0, &ConfigError{Field: "limit", Value: cfg.Limit, Reason: "must be at least 1"}
	}
	if cfg.Workers < 0 {
		return 0, 0, &ConfigError{Field: "workers", Value: cfg.Workers, Reason: "must not be negative"}
	}
	if cfg.Interval < 0 {
		return 0, 0, &ConfigError{Field: "interval", Value: cfg.Interval, Reason: "must not be negative"}
	}

	workers = cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	interval = cfg.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	return workers, interval, nil
}

// monitor blocks until the run should end and reports why. It is the only
// place that compares the match count with the limit.
func (c *Coordinator) monitor(ctx context.Context, limit uint64, interval time.Duration, counters *Counters, stop *StopSignal, hits <-chan struct{}) stopReason {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if counters.Matches() >= limit {
				return reasonLimit
			}
			return reasonCanceled
		case <-stop.Done():
			// Only a failing worker raises the signal before we do.
			return reasonFailure
		case <-hits:
		case <-ticker.C:
			c.sample(counters)
		}

		if counters.Matches() >= limit {
			return reasonLimit
		}
	}
}

// sample feeds the speed tracker and the reporter with a fresh snapshot.
func (c *Coordinator) sample(counters *Counters) generator.Stats {
	c.mu.Lock()
	stats := counters.Snapshot()
	c.tracker.Add(time.Now(), stats.Attempts)
	stats.RecentRate = c.tracker.Rate()
	c.mu.Unlock()

	if c.reporter != nil {
		c.reporter(stats)
	}
	return stats
}
