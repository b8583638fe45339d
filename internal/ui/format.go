package ui

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatNumber adds thousands separators: 1234567 -> "1,234,567".
func FormatNumber(n uint64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatHashRate formats an attempts-per-second figure.
func FormatHashRate(rate float64) string {
	switch {
	case rate >= 1e6:
		return fmt.Sprintf("%.1fM/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fK/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f/s", rate)
	}
}

// Probability is the chance that at least one of attempts tries has hit a
// target expected once every difficulty tries. 0 difficulty means unknown.
func Probability(attempts, difficulty uint64) float64 {
	if difficulty == 0 {
		return 0
	}
	return 1 - math.Exp(-float64(attempts)/float64(difficulty))
}

// ETA estimates the time until the cumulative probability reaches 50%.
// It returns false when the rate or difficulty is unknown.
func ETA(attempts, difficulty uint64, rate float64) (time.Duration, bool) {
	if difficulty == 0 || rate <= 0 {
		return 0, false
	}
	median := float64(difficulty) * math.Ln2
	left := median - float64(attempts)
	if left <= 0 {
		return 0, true
	}
	secs := left / rate
	if secs > float64(math.MaxInt64/int64(time.Second)) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}
