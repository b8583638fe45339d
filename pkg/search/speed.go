package search

import "time"

// DefaultSpeedWindow is how far back SpeedTracker looks.
const DefaultSpeedWindow = 5 * time.Second

type speedSample struct {
	at       time.Time
	attempts uint64
}

// SpeedTracker computes throughput over a sliding time window from periodic
// samples of the cumulative attempt counter. It is not safe for concurrent use.
type SpeedTracker struct {
	window  time.Duration
	samples []speedSample
}

// NewSpeedTracker returns a tracker over the given window.
func NewSpeedTracker(window time.Duration) *SpeedTracker {
	if window <= 0 {
		window = DefaultSpeedWindow
	}
	return &SpeedTracker{window: window}
}

// Add records the cumulative attempt count observed at time at and drops
// samples that fell out of the window.
func (t *SpeedTracker) Add(at time.Time, attempts uint64) {
	t.samples = append(t.samples, speedSample{at: at, attempts: attempts})

	cutoff := at.Add(-t.window)
	drop := 0
	for drop < len(t.samples)-1 && t.samples[drop].at.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		t.samples = append(t.samples[:0], t.samples[drop:]...)
	}
}

// Rate returns attempts per second between the oldest and newest sample in
// the window, or 0 until two samples at distinct times exist.
func (t *SpeedTracker) Rate() float64 {
	if len(t.samples) < 2 {
		return 0
	}
	first, last := t.samples[0], t.samples[len(t.samples)-1]
	secs := last.at.Sub(first.at).Seconds()
	if secs <= 0 || last.attempts < first.attempts {
		return 0
	}
	return float64(last.attempts-first.attempts) / secs
}
