// Package matcher compiles user patterns into address matchers.
//
// Matching policy: a pattern is searched for anywhere in the full address
// string (no implicit anchoring; use ^ and $ in regex mode), and comparison is
// case-sensitive unless Spec.IgnoreCase is set. Regex mode uses a backtracking
// engine so backreferences such as `^(\w)\1` work.
//
// A compiled Matcher is immutable and safe for concurrent use.
package matcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds one regex evaluation. Backtracking patterns
// such as `(\w+)+!` are exponential in the address length; when the budget
// runs out the candidate counts as a miss.
const DefaultMatchTimeout = 50 * time.Millisecond

// Mode selects how Spec.Pattern is interpreted.
type Mode int

const (
	ModeRegex     Mode = iota // Backtracking regular expression
	ModePrefix                // Address starts with the word
	ModeSuffix                // Address ends with the word
	ModeContains              // Address contains the word
	ModeRepeating             // Address starts with Count copies of one character
)

var modeNames = map[Mode]string{
	ModeRegex:     "regex",
	ModePrefix:    "prefix",
	ModeSuffix:    "suffix",
	ModeContains:  "contains",
	ModeRepeating: "repeating",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeRegex, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

var (
	ErrEmptyPattern = errors.New("pattern is empty")
	ErrInvalidCount = errors.New("repeating count must be at least 1")
	ErrUnknownMode  = errors.New("unknown match mode")

	ErrInvalidTimeout = errors.New("match timeout must not be negative")
)

// CompileError reports a malformed regular expression.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Spec describes what to look for.
type Spec struct {
	Mode       Mode
	Pattern    string // Regex, or the literal word for prefix/suffix/contains
	IgnoreCase bool   // Not used by ModeRepeating
	Count      int    // Run length for ModeRepeating
	Lead       string // Fixed address start skipped by ModeRepeating ("0x", "T", ...)

	// Timeout bounds each regex evaluation; 0 means DefaultMatchTimeout.
	Timeout time.Duration
}

// Matcher tests address strings.
type Matcher interface {
	Matches(address string) bool
	String() string
}

// Compile validates spec and builds its Matcher.
func Compile(spec Spec) (Matcher, error) {
	switch spec.Mode {
	case ModeRepeating:
		if spec.Count < 1 {
			return nil, ErrInvalidCount
		}
		return repeatingMatcher{count: spec.Count, lead: spec.Lead}, nil
	case ModeRegex:
		if spec.Pattern == "" {
			return nil, ErrEmptyPattern
		}
		if spec.Timeout < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, spec.Timeout)
		}
		return compileRegex(spec.Pattern, spec.IgnoreCase, spec.Timeout)
	case ModePrefix, ModeSuffix, ModeContains:
		if spec.Pattern == "" {
			return nil, ErrEmptyPattern
		}
		return newLiteral(spec), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(spec.Mode))
	}
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level patterns.
func MustCompile(spec Spec) Matcher {
	m, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return m
}

type regexMatcher struct {
	re *regexp2.Regexp
}

func compileRegex(pattern string, ignoreCase bool, timeout time.Duration) (*regexMatcher, error) {
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	if timeout == 0 {
		timeout = DefaultMatchTimeout
	}
	re.MatchTimeout = timeout
	return &regexMatcher{re: re}, nil
}

// Matches runs an unanchored search. The engine only errors when the match
// timeout expires, and that counts as a miss.
func (m *regexMatcher) Matches(address string) bool {
	ok, err := m.re.MatchString(address)
	return err == nil && ok
}

func (m *regexMatcher) String() string { return "regex " + m.re.String() }

type literalMatcher struct {
	mode       Mode
	word       string
	ignoreCase bool
}

func newLiteral(spec Spec) *literalMatcher {
	word := spec.Pattern
	if spec.IgnoreCase {
		word = strings.ToLower(word)
	}
	return &literalMatcher{mode: spec.Mode, word: word, ignoreCase: spec.IgnoreCase}
}

func (m *literalMatcher) Matches(address string) bool {
	if m.ignoreCase {
		address = strings.ToLower(address)
	}
	switch m.mode {
	case ModePrefix:
		return strings.HasPrefix(address, m.word)
	case ModeSuffix:
		return strings.HasSuffix(address, m.word)
	default:
		return strings.Contains(address, m.word)
	}
}

func (m *literalMatcher) String() string {
	s := fmt.Sprintf("%s %q", m.mode, m.word)
	if m.ignoreCase {
		s += " (ignore case)"
	}
	return s
}

type repeatingMatcher struct {
	count int
	lead  string
}

// Matches reports whether the leading run of the address's first character
// (after the network lead) is at least count long.
func (m repeatingMatcher) Matches(address string) bool {
	address = strings.TrimPrefix(address, m.lead)
	if address == "" {
		return false
	}
	first := address[0]
	run := 0
	for run < len(address) && address[run] == first {
		run++
	}
	return run >= m.count
}

func (m repeatingMatcher) String() string {
	return fmt.Sprintf("repeating x%d", m.count)
}
