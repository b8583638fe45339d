package matcher

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestBackreference(t *testing.T) {
	m, err := Compile(Spec{Mode: ModeRegex, Pattern: `^(\w)\1`})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !m.Matches("AAxyz") {
		t.Error("expected AAxyz to match")
	}
	if m.Matches("ABxyz") {
		t.Error("expected ABxyz not to match")
	}
}

func TestCompileModes(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		match   []string
		noMatch []string
	}{
		{
			name:    "regex is unanchored",
			spec:    Spec{Mode: ModeRegex, Pattern: "abc"},
			match:   []string{"abc", "xxabcxx", "1abc"},
			noMatch: []string{"ABC", "ab c"},
		},
		{
			name:    "regex anchors",
			spec:    Spec{Mode: ModeRegex, Pattern: "^Sol.*na$"},
			match:   []string{"Solana", "SolXYZna"},
			noMatch: []string{"xSolana", "Solanax"},
		},
		{
			name:    "regex ignore case",
			spec:    Spec{Mode: ModeRegex, Pattern: "^dead", IgnoreCase: true},
			match:   []string{"DEADbeef", "deadBEEF", "DeAd"},
			noMatch: []string{"beefdead"},
		},
		{
			name:    "regex lookahead and backreference",
			spec:    Spec{Mode: ModeRegex, Pattern: `(?=.*9)^(..)\1`},
			match:   []string{"abab9", "zzzz19"},
			noMatch: []string{"abab", "abcd9"},
		},
		{
			name:    "prefix",
			spec:    Spec{Mode: ModePrefix, Pattern: "Amr"},
			match:   []string{"Amr123", "Amr"},
			noMatch: []string{"amr123", "xAmr"},
		},
		{
			name:    "prefix ignore case",
			spec:    Spec{Mode: ModePrefix, Pattern: "AmR", IgnoreCase: true},
			match:   []string{"amr123", "AMRx"},
			noMatch: []string{"xamr"},
		},
		{
			name:    "suffix",
			spec:    Spec{Mode: ModeSuffix, Pattern: "pump"},
			match:   []string{"9xQpump"},
			noMatch: []string{"9xQPUMP", "pumpx"},
		},
		{
			name:    "suffix ignore case",
			spec:    Spec{Mode: ModeSuffix, Pattern: "PUMP", IgnoreCase: true},
			match:   []string{"9xQpump", "9xQPuMp"},
			noMatch: []string{"pump9"},
		},
		{
			name:    "contains",
			spec:    Spec{Mode: ModeContains, Pattern: "cafe"},
			match:   []string{"0xcafe", "cafe", "xxcafexx"},
			noMatch: []string{"CAFE", "caf"},
		},
		{
			name:    "repeating",
			spec:    Spec{Mode: ModeRepeating, Count: 3},
			match:   []string{"aaab", "zzzzzz", "111"},
			noMatch: []string{"aab", "abaa", "", "aa"},
		},
		{
			name:    "repeating skips lead",
			spec:    Spec{Mode: ModeRepeating, Count: 4, Lead: "0x"},
			match:   []string{"0x0000ab", "0xffff"},
			noMatch: []string{"0x000a", "0x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.spec)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			for _, s := range tt.match {
				if !m.Matches(s) {
					t.Errorf("%s: expected %q to match", m, s)
				}
			}
			for _, s := range tt.noMatch {
				if m.Matches(s) {
					t.Errorf("%s: expected %q not to match", m, s)
				}
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		want    error
		compile bool
	}{
		{"empty regex", Spec{Mode: ModeRegex}, ErrEmptyPattern, false},
		{"empty prefix", Spec{Mode: ModePrefix}, ErrEmptyPattern, false},
		{"zero count", Spec{Mode: ModeRepeating, Count: 0}, ErrInvalidCount, false},
		{"unknown mode", Spec{Mode: Mode(42), Pattern: "x"}, ErrUnknownMode, false},
		{"unbalanced group", Spec{Mode: ModeRegex, Pattern: "(abc"}, nil, true},
		{"undefined backreference", Spec{Mode: ModeRegex, Pattern: `(a)\2`}, nil, true},
		{"dangling quantifier", Spec{Mode: ModeRegex, Pattern: "*a"}, nil, true},
		{"negative timeout", Spec{Mode: ModeRegex, Pattern: "a", Timeout: -time.Second}, ErrInvalidTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.spec)
			if err == nil {
				t.Fatalf("expected error, got matcher %s", m)
			}
			if tt.compile {
				var ce *CompileError
				if !errors.As(err, &ce) {
					t.Fatalf("expected CompileError, got %T: %v", err, err)
				}
				if ce.Pattern != tt.spec.Pattern {
					t.Errorf("Pattern = %q, want %q", ce.Pattern, tt.spec.Pattern)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for want, name := range modeNames {
		got, err := ParseMode(name)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", name, got, err)
		}
	}
	if got, err := ParseMode(""); err != nil || got != ModeRegex {
		t.Errorf("ParseMode(\"\") = %v, %v; want regex", got, err)
	}
	if _, err := ParseMode("glob"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(glob) err = %v", err)
	}
}

func TestMatchesConcurrentDeterministic(t *testing.T) {
	m := MustCompile(Spec{Mode: ModeRegex, Pattern: `^(\w)\1|(xy)+z$`})
	inputs := []string{"AAxyz", "ABxyz", "qxyxyz", "", "9Zq", "ZZ"}

	want := make([]bool, len(inputs))
	for i, s := range inputs {
		want[i] = m.Matches(s)
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 500; n++ {
				for i, s := range inputs {
					if got := m.Matches(s); got != want[i] {
						t.Errorf("Matches(%q) = %v, want %v", s, got, want[i])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCompile(Spec{Mode: ModeRegex, Pattern: "("})
}

func TestRegexTimeoutCountsAsMiss(t *testing.T) {
	// Nested quantifiers backtrack exponentially on a long word with no '!'.
	m := MustCompile(Spec{Mode: ModeRegex, Pattern: `(\w+)+!`, Timeout: 20 * time.Millisecond})
	address := strings.Repeat("7Yq", 14) + "Zx"

	done := make(chan bool, 1)
	go func() { done <- m.Matches(address) }()

	select {
	case ok := <-done:
		if ok {
			t.Error("timed out evaluation reported a match")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Matches did not honor its timeout")
	}

	if !m.Matches("abc!") {
		t.Error("short input should still match")
	}
}

func TestDefaultMatchTimeoutApplied(t *testing.T) {
	m := MustCompile(Spec{Mode: ModeRegex, Pattern: "abc"}).(*regexMatcher)
	if m.re.MatchTimeout != DefaultMatchTimeout {
		t.Errorf("MatchTimeout = %v, want %v", m.re.MatchTimeout, DefaultMatchTimeout)
	}
}
