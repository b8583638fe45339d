// Package ui renders search progress and results on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

var (
	title  = color.New(color.FgCyan, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	purple = color.New(color.FgMagenta, color.Bold)
	dim    = color.New(color.Faint)
)

const barWidth = 30

var spinners = []string{"◐", "◓", "◑", "◒"}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SearchInfo describes a run for the banner.
type SearchInfo struct {
	Network     generator.Network
	AddressType generator.AddressType
	Mode        string
	Pattern     string
	IgnoreCase  bool
	Workers     int
	Limit       uint64
	Difficulty  uint64 // 0 when it cannot be estimated
	OutputDir   string
}

// Console writes human-oriented output. Progress lines are redrawn in place,
// so it is only meant for terminals; methods are safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	frame int
	live  bool // a progress line is on screen
}

// NewConsole returns a console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// NewStdoutConsole returns a console on the color-aware stdout writer.
func NewStdoutConsole() *Console {
	return NewConsole(color.Output)
}

// Banner prints the tool name and version.
func (c *Console) Banner(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out)
	title.Fprint(c.out, "  VanityHunter")
	dim.Fprintf(c.out, " v%s\n\n", version)
}

// SearchInfo prints the run configuration.
func (c *Console) SearchInfo(info SearchInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	network := info.Network.String()
	if info.Network == generator.Bitcoin {
		network += " " + info.AddressType.String()
	}
	green.Fprint(c.out, "    SEARCHING ")
	bold.Fprintf(c.out, "%s", network)
	fmt.Fprintf(c.out, "  %s ", info.Mode)
	cyan.Fprintf(c.out, "%s", info.Pattern)
	if info.IgnoreCase {
		dim.Fprint(c.out, " (ignore case)")
	}
	fmt.Fprintln(c.out)

	difficulty := "unknown"
	if info.Difficulty > 0 {
		difficulty = "1/" + FormatNumber(info.Difficulty)
	}
	dim.Fprintf(c.out, "    workers %d │ limit %d │ odds %s │ output %s\n\n",
		info.Workers, info.Limit, difficulty, info.OutputDir)
}

// Progress redraws the progress line. With a known difficulty it includes a
// bar showing the probability of having found at least one match by now.
func (c *Console) Progress(stats generator.Stats, difficulty uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spinner := spinners[c.frame%len(spinners)]
	c.frame++

	var b strings.Builder
	cyan.Fprint(&b, spinner)
	b.WriteString(" ")
	if difficulty > 0 {
		p := Probability(stats.Attempts, difficulty)
		filled := min(int(p*barWidth), barWidth)
		dim.Fprint(&b, strings.Repeat("▓", filled)+strings.Repeat("░", barWidth-filled))
		fmt.Fprintf(&b, " %3.0f%% │ ", p*100)
	}
	green.Fprint(&b, FormatHashRate(stats.RecentRate))
	dim.Fprintf(&b, " (avg %s)", FormatHashRate(stats.HashRate))
	b.WriteString(" │ ")
	yellow.Fprint(&b, FormatNumber(stats.Attempts))
	fmt.Fprintf(&b, " │ %d found │ %s", stats.Matches, FormatDuration(stats.Elapsed))
	if eta, ok := ETA(stats.Attempts, difficulty, stats.RecentRate); ok && stats.Matches == 0 {
		fmt.Fprintf(&b, " │ eta %s", FormatDuration(eta))
	}

	fmt.Fprintf(c.out, "\r\033[K    %s", b.String())
	c.live = true
}

// Match prints one found address.
func (c *Console) Match(n int, result generator.Result, savedTo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()

	fmt.Fprintf(c.out, "\n    %s #%d found after %s attempts (%s)\n",
		green.Sprint("✓"), n, FormatNumber(result.Attempt), FormatDuration(result.Elapsed))
	purple.Fprint(c.out, "    ADDRESS      ")
	green.Fprintln(c.out, result.Address)
	purple.Fprint(c.out, "    PRIVATE KEY  ")
	yellow.Fprintln(c.out, result.PrivateKey)
	if savedTo != "" {
		dim.Fprintf(c.out, "    saved to %s\n", savedTo)
	}
	fmt.Fprintln(c.out)
}

// Summary prints the totals once the run is over.
func (c *Console) Summary(stats generator.Stats, found int, limit uint64, canceled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()

	status := green.Sprint("done")
	if canceled {
		status = yellow.Sprint("canceled")
	}
	fmt.Fprintf(c.out, "\n    %s │ found %d/%d │ %s attempts │ %s │ %s\n",
		status, found, limit, FormatNumber(stats.Attempts),
		FormatHashRate(stats.HashRate), FormatDuration(stats.Elapsed))
	if found > 0 {
		red.Fprintln(c.out, "    ⚠  KEEP YOUR PRIVATE KEYS SECRET!")
	}
}

// Error prints a failure message.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	red.Fprintf(c.out, "\n    ✗ %v\n", err)
}

func (c *Console) clearLocked() {
	if c.live {
		fmt.Fprint(c.out, "\r\033[K")
		c.live = false
	}
}
