package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amr-9/VanityHunter/internal/config"
	"github.com/Amr-9/VanityHunter/internal/logging"
	"github.com/Amr-9/VanityHunter/internal/store"
	"github.com/Amr-9/VanityHunter/internal/telemetry"
	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/search"
)

// logEvery throttles progress lines when stdout is not a terminal.
const logEvery = time.Second

type options struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	return newCommand(&options{cfg: config.Default()})
}

func newCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vanityhunter [pattern]",
		Short: "Vanity address generator",
		Long: `vanityhunter generates keypairs on every CPU core until it finds
addresses matching a pattern. Patterns are searched anywhere in the address;
regex mode supports backreferences and lookaround.

Examples:
  vanityhunter '^(\w)\1\1'
  vanityhunter --mode prefix --ignore-case abc --limit 3
  vanityhunter --network ethereum --mode prefix dead
  vanityhunter --network bitcoin --address-type legacy --mode repeating --count 4
  vanityhunter --config hunter.toml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts.verbose)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "TOML file with default settings")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.StringVarP(&opts.cfg.Network, "network", "N", opts.cfg.Network, "solana, ethereum, tron, bitcoin, aptos or sui")
	f.StringVar(&opts.cfg.AddressType, "address-type", opts.cfg.AddressType, "bitcoin address type: taproot, legacy or segwit")
	f.StringVarP(&opts.cfg.Mode, "mode", "m", opts.cfg.Mode, "regex, prefix, suffix, contains or repeating")
	f.StringVarP(&opts.cfg.Pattern, "pattern", "p", opts.cfg.Pattern, "pattern to search for (or pass it as the argument)")
	f.BoolVarP(&opts.cfg.IgnoreCase, "ignore-case", "i", opts.cfg.IgnoreCase, "case-insensitive matching")
	f.IntVar(&opts.cfg.Count, "count", opts.cfg.Count, "run length for repeating mode")
	f.DurationVar(&opts.cfg.MatchTimeout, "match-timeout", opts.cfg.MatchTimeout, "time budget for one regex evaluation")
	f.Uint64VarP(&opts.cfg.Limit, "limit", "l", opts.cfg.Limit, "number of matches to find")
	f.IntVarP(&opts.cfg.Threads, "threads", "t", opts.cfg.Threads, "worker goroutines (0 = all cores)")
	f.DurationVar(&opts.cfg.Interval, "interval", opts.cfg.Interval, "progress sampling interval")
	f.StringVarP(&opts.cfg.OutputDir, "output", "o", opts.cfg.OutputDir, "directory for key files")
	f.StringVar(&opts.cfg.OTLPEndpoint, "otlp-endpoint", opts.cfg.OTLPEndpoint, "OTLP/gRPC collector for metrics (host:port)")
	f.BoolVar(&opts.cfg.HighPriority, "high-priority", opts.cfg.HighPriority, "raise the process scheduling priority")

	return cmd
}

// flagFields maps flag names to the config fields they override.
var flagFields = map[string]func(dst, src *config.Config){
	"network":       func(d, s *config.Config) { d.Network = s.Network },
	"address-type":  func(d, s *config.Config) { d.AddressType = s.AddressType },
	"mode":          func(d, s *config.Config) { d.Mode = s.Mode },
	"pattern":       func(d, s *config.Config) { d.Pattern = s.Pattern },
	"ignore-case":   func(d, s *config.Config) { d.IgnoreCase = s.IgnoreCase },
	"count":         func(d, s *config.Config) { d.Count = s.Count },
	"match-timeout": func(d, s *config.Config) { d.MatchTimeout = s.MatchTimeout },
	"limit":         func(d, s *config.Config) { d.Limit = s.Limit },
	"threads":       func(d, s *config.Config) { d.Threads = s.Threads },
	"interval":      func(d, s *config.Config) { d.Interval = s.Interval },
	"output":        func(d, s *config.Config) { d.OutputDir = s.OutputDir },
	"otlp-endpoint": func(d, s *config.Config) { d.OTLPEndpoint = s.OTLPEndpoint },
	"high-priority": func(d, s *config.Config) { d.HighPriority = s.HighPriority },
}

// resolve layers explicitly set flags and the positional pattern over the
// config file, or over the defaults when there is no file.
func (o *options) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := o.cfg
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		for name, apply := range flagFields {
			if cmd.Flags().Changed(name) {
				apply(&cfg, &o.cfg)
			}
		}
	}
	if len(args) == 1 {
		if cmd.Flags().Changed("pattern") {
			return config.Config{}, errors.New("pattern given both as argument and --pattern")
		}
		cfg.Pattern = args[0]
	}
	return cfg, cfg.Validate()
}

func run(parent context.Context, cfg config.Config, verbose bool) error {
	logger := logging.Init(verbose)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	spec, err := cfg.MatcherSpec(gen.Lead())
	if err != nil {
		return err
	}
	word := cfg.Word(gen.Lead())
	if bad := invalidChars(word, gen.Alphabet(), cfg.IgnoreCase); len(bad) > 0 {
		return &search.ConfigError{
			Field:  "pattern",
			Value:  fmt.Sprintf("%q", cfg.Pattern),
			Reason: fmt.Sprintf("%q can never appear in a %s address", string(bad), gen.Network()),
		}
	}

	if cfg.HighPriority {
		if err := raisePriority(); err != nil {
			logger.Warn("could not raise process priority", "err", err)
		} else {
			logger.Debug("process priority raised")
		}
	}

	files, err := store.NewFileStore(cfg.OutputDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tty := ui.IsTerminal(os.Stdout)
	console := ui.NewStdoutConsole()
	difficulty := estimateDifficulty(cfg, gen, word)

	var found atomic.Int64
	persister := search.PersisterFunc(func(result generator.Result) error {
		if err := files.Persist(result); err != nil {
			return err
		}
		console.Match(int(found.Add(1)), result, files.ReportPath(result.Address))
		return nil
	})

	coord := search.New(gen,
		search.WithLogger(logger),
		search.WithPersister(persister),
		search.WithReporter(newReporter(tty, console, logger, difficulty)),
	)

	shutdown, err := telemetry.Init(ctx, cfg.OTLPEndpoint, "vanityhunter", gen.Network(), coord.Stats)
	if err != nil {
		logger.Warn("metrics disabled", "err", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("metrics shutdown", "err", err)
		}
	}()

	workers := cfg.Threads
	if workers == 0 {
		workers = defaultWorkers()
	}
	console.Banner(version)
	console.SearchInfo(ui.SearchInfo{
		Network:     gen.Network(),
		AddressType: addressType(gen),
		Mode:        spec.Mode.String(),
		Pattern:     spec.Pattern,
		IgnoreCase:  spec.IgnoreCase,
		Workers:     workers,
		Limit:       cfg.Limit,
		Difficulty:  difficulty,
		OutputDir:   files.Dir(),
	})

	results, err := coord.Run(ctx, search.Config{
		Pattern:  spec,
		Limit:    cfg.Limit,
		Workers:  workers,
		Interval: cfg.Interval,
	})
	canceled := errors.Is(err, search.ErrCanceled)
	if err == nil || canceled {
		console.Summary(coord.Stats(), len(results), cfg.Limit, canceled)
	}
	return err
}

// newReporter draws the progress line on a terminal and logs a line per
// second otherwise.
func newReporter(tty bool, console *ui.Console, logger *slog.Logger, difficulty uint64) search.Reporter {
	if tty {
		return func(stats generator.Stats) { console.Progress(stats, difficulty) }
	}
	var last time.Duration
	return func(stats generator.Stats) {
		if stats.Elapsed-last < logEvery {
			return
		}
		last = stats.Elapsed
		logger.Info("progress",
			"attempts", stats.Attempts,
			"matches", stats.Matches,
			"rate", ui.FormatHashRate(stats.RecentRate),
			"elapsed", stats.Elapsed.Round(time.Second))
	}
}
