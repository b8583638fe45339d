package search

import (
	"sync/atomic"
	"time"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Counters is the progress state shared by every worker of one run.
// All methods are safe for concurrent use; the counters never decrease.
type Counters struct {
	attempts atomic.Uint64
	matches  atomic.Uint64
	start    time.Time
}

// NewCounters returns zeroed counters whose clock starts now.
func NewCounters() *Counters {
	return &Counters{start: time.Now()}
}

// AddAttempt records one tested keypair and returns the new total, which
// doubles as the attempt index of that keypair.
func (c *Counters) AddAttempt() uint64 { return c.attempts.Add(1) }

// AddMatch records one matching keypair and returns the new total.
func (c *Counters) AddMatch() uint64 { return c.matches.Add(1) }

func (c *Counters) Attempts() uint64 { return c.attempts.Load() }
func (c *Counters) Matches() uint64  { return c.matches.Load() }

// Elapsed is the time since the counters were created.
func (c *Counters) Elapsed() time.Duration { return time.Since(c.start) }

// Snapshot returns a point-in-time view with the whole-run hash rate.
// Attempts and matches are loaded separately, so under load the pair is not
// a single atomic observation.
func (c *Counters) Snapshot() generator.Stats {
	attempts := c.attempts.Load()
	matches := c.matches.Load()
	elapsed := time.Since(c.start)

	var hashRate float64
	if secs := elapsed.Seconds(); secs > 0 {
		hashRate = float64(attempts) / secs
	}
	return generator.Stats{
		Attempts: attempts,
		Matches:  matches,
		Elapsed:  elapsed,
		HashRate: hashRate,
	}
}
