package ui

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatNumber(t *testing.T) {
	tests := map[uint64]string{
		0:             "0",
		999:           "999",
		1000:          "1,000",
		1234567:       "1,234,567",
		math.MaxUint64: "18,446,744,073,709,551,615",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m 30s"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatHashRate(t *testing.T) {
	tests := map[float64]string{
		12:      "12/s",
		2500:    "2.5K/s",
		3400000: "3.4M/s",
	}
	for in, want := range tests {
		if got := FormatHashRate(in); got != want {
			t.Errorf("FormatHashRate(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestProbability(t *testing.T) {
	if p := Probability(100, 0); p != 0 {
		t.Errorf("unknown difficulty gave %v", p)
	}
	if p := Probability(0, 58); p != 0 {
		t.Errorf("zero attempts gave %v", p)
	}
	if p := Probability(58, 58); math.Abs(p-(1-1/math.E)) > 1e-9 {
		t.Errorf("Probability(d, d) = %v, want 1-1/e", p)
	}
	if p := Probability(1e9, 58); p < 0.999 || p > 1 {
		t.Errorf("Probability saturates at %v", p)
	}
}

func TestETA(t *testing.T) {
	if _, ok := ETA(0, 0, 100); ok {
		t.Error("ETA with unknown difficulty should not be ok")
	}
	if _, ok := ETA(0, 100, 0); ok {
		t.Error("ETA with zero rate should not be ok")
	}
	eta, ok := ETA(0, 1000, 1000*math.Ln2)
	if !ok || eta < 999*time.Millisecond || eta > 1001*time.Millisecond {
		t.Errorf("ETA = %v, %v; want ~1s", eta, ok)
	}
	if eta, ok := ETA(5000, 1000, 10); !ok || eta != 0 {
		t.Errorf("past median ETA = %v, %v; want 0, true", eta, ok)
	}
}

func TestConsoleProgressAndMatch(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Progress(generator.Stats{Attempts: 1500, Matches: 0, Elapsed: 2 * time.Second, HashRate: 750, RecentRate: 800}, 58*58)
	out := buf.String()
	for _, want := range []string{"1,500", "800/s", "avg 750/s", "0 found", "2.0s", "%"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress missing %q: %q", want, out)
		}
	}

	buf.Reset()
	c.Match(1, generator.Result{Address: "AbcXYZ", PrivateKey: "secret", Attempt: 42, Elapsed: time.Second}, "key_AbcXYZ.txt")
	out = buf.String()
	if !strings.HasPrefix(out, "\r\033[K") {
		t.Errorf("match did not clear the progress line: %q", out)
	}
	for _, want := range []string{"#1", "AbcXYZ", "secret", "42 attempts", "key_AbcXYZ.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("match output missing %q: %q", want, out)
		}
	}
}

func TestConsoleProgressWithoutDifficulty(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Progress(generator.Stats{Attempts: 10}, 0)
	if strings.Contains(buf.String(), "%") || strings.Contains(buf.String(), "eta") {
		t.Errorf("progress without difficulty shows odds: %q", buf.String())
	}
}

func TestConsoleSummary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Summary(generator.Stats{Attempts: 2000, HashRate: 1000, Elapsed: 2 * time.Second}, 2, 3, true)
	out := buf.String()
	for _, want := range []string{"canceled", "found 2/3", "2,000 attempts", "SECRET"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %q", want, out)
		}
	}

	buf.Reset()
	c.Error(errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("error output %q", buf.String())
	}
}

func TestConsoleSearchInfo(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).SearchInfo(SearchInfo{
		Network:     generator.Bitcoin,
		AddressType: generator.AddressTypeTaproot,
		Mode:        "prefix",
		Pattern:     "bc1pxyz",
		Workers:     4,
		Limit:       2,
		Difficulty:  32768,
		OutputDir:   "keys",
	})
	out := buf.String()
	for _, want := range []string{"Bitcoin Taproot (P2TR)", "prefix", "bc1pxyz", "workers 4", "limit 2", "1/32,768", "keys"} {
		if !strings.Contains(out, want) {
			t.Errorf("search info missing %q: %q", want, out)
		}
	}
}
