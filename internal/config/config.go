// Package config loads run settings from an optional TOML file. Command-line
// flags are applied on top by the caller.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/matcher"
	"github.com/Amr-9/VanityHunter/pkg/search"
)

// Config is the full set of run settings.
type Config struct {
	Network      string        `toml:"network"`
	AddressType  string        `toml:"address_type"`
	Mode         string        `toml:"mode"`
	Pattern      string        `toml:"pattern"`
	IgnoreCase   bool          `toml:"ignore_case"`
	Count        int           `toml:"count"`
	MatchTimeout time.Duration `toml:"match_timeout"`
	Limit        uint64        `toml:"limit"`
	Threads      int           `toml:"threads"`
	Interval     time.Duration `toml:"interval"`
	OutputDir    string        `toml:"output_dir"`
	OTLPEndpoint string        `toml:"otlp_endpoint"`
	HighPriority bool          `toml:"high_priority"`
}

// Default returns the settings used when neither file nor flags say otherwise.
func Default() Config {
	return Config{
		Network:      "solana",
		Mode:         "regex",
		MatchTimeout: matcher.DefaultMatchTimeout,
		Limit:        1,
		Threads:      0,
		Interval:     search.DefaultInterval,
		OutputDir:    ".",
	}
}

// Load reads path over Default(). Unknown keys are rejected so a typo in the
// file does not silently fall back to a default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem as a
// *search.ConfigError.
func (c Config) Validate() error {
	if _, ok := generator.ParseNetwork(c.Network); !ok {
		return &search.ConfigError{Field: "network", Value: c.Network, Reason: "want solana, ethereum, tron, bitcoin, aptos or sui"}
	}
	if _, ok := generator.ParseAddressType(c.AddressType); !ok {
		return &search.ConfigError{Field: "address_type", Value: c.AddressType, Reason: "want taproot, legacy or segwit"}
	}
	mode, err := matcher.ParseMode(c.Mode)
	if err != nil {
		return &search.ConfigError{Field: "mode", Value: c.Mode, Err: err}
	}
	switch {
	case mode == matcher.ModeRepeating && c.Count < 1:
		return &search.ConfigError{Field: "count", Value: c.Count, Reason: "must be at least 1"}
	case mode != matcher.ModeRepeating && c.Pattern == "":
		return &search.ConfigError{Field: "pattern", Value: `""`, Err: matcher.ErrEmptyPattern}
	case c.MatchTimeout < 0:
		return &search.ConfigError{Field: "match_timeout", Value: c.MatchTimeout, Reason: "must not be negative"}
	case c.Limit < 1:
		return &search.ConfigError{Field: "limit", Value: c.Limit, Reason: "must be at least 1"}
	case c.Threads < 0:
		return &search.ConfigError{Field: "threads", Value: c.Threads, Reason: "must not be negative"}
	case c.Interval < 0:
		return &search.ConfigError{Field: "interval", Value: c.Interval, Reason: "must not be negative"}
	case c.OutputDir == "":
		return &search.ConfigError{Field: "output_dir", Value: `""`, Reason: "must not be empty"}
	}
	return nil
}

// MatcherSpec builds the pattern description for a network whose addresses
// all start with lead. A prefix word that omits the lead gets it prepended,
// so "dead" on Ethereum means "0xdead".
func (c Config) MatcherSpec(lead string) (matcher.Spec, error) {
	mode, err := matcher.ParseMode(c.Mode)
	if err != nil {
		return matcher.Spec{}, err
	}
	spec := matcher.Spec{
		Mode:       mode,
		Pattern:    c.Pattern,
		IgnoreCase: c.IgnoreCase,
		Count:      c.Count,
		Lead:       lead,
		Timeout:    c.MatchTimeout,
	}
	if mode == matcher.ModePrefix && lead != "" && !hasLead(c.Pattern, lead, c.IgnoreCase) {
		spec.Pattern = lead + c.Pattern
	}
	return spec, nil
}

// Word returns the literal the user is searching for without the network
// lead, or "" for modes that have no literal.
func (c Config) Word(lead string) string {
	mode, err := matcher.ParseMode(c.Mode)
	if err != nil {
		return ""
	}
	switch mode {
	case matcher.ModePrefix:
		if hasLead(c.Pattern, lead, c.IgnoreCase) {
			return c.Pattern[len(lead):]
		}
		return c.Pattern
	case matcher.ModeSuffix, matcher.ModeContains:
		return c.Pattern
	default:
		return ""
	}
}

func hasLead(word, lead string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.HasPrefix(strings.ToLower(word), strings.ToLower(lead))
	}
	return strings.HasPrefix(word, lead)
}
