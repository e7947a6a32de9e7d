package main

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/config"
)

// rootOptions holds global flags and the state derived from them.
type rootOptions struct {
	Verbose  bool
	Width    int
	Height   int
	GemTypes int
	Seed     uint64

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "match3",
		Short: "Match-3 board engine tools",
		Long: `Tools for the match-3 board engine.

Board settings come from MATCH3_* environment variables and can be
overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log every processed command")
	flags.IntVar(&opts.Width, "width", 0, "board width (overrides MATCH3_WIDTH)")
	flags.IntVar(&opts.Height, "height", 0, "board height (overrides MATCH3_HEIGHT)")
	flags.IntVar(&opts.GemTypes, "gem-types", 0, "number of gem types (overrides MATCH3_GEM_TYPES)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one from the clock (overrides MATCH3_SEED)")

	cmd.AddCommand(newPrintCommand(opts))
	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newStressCommand(opts))

	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = o.Width
	}
	if flags.Changed("height") {
		cfg.Height = o.Height
	}
	if flags.Changed("gem-types") {
		cfg.GemTypes = o.GemTypes
	}
	if flags.Changed("seed") {
		cfg.Seed = o.Seed
	}
	if err := cfg.Board().Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}

	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// rng returns a generator for the configured seed.
func (o *rootOptions) rng() *rand.Rand {
	seed := o.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	o.logger.Debug("seeded random source", "seed", seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (o *rootOptions) newBoard() (*board.Board, error) {
	return board.New(o.cfg.Board(), o.rng())
}
