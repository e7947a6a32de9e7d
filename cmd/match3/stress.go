package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/match3/autoplay"
	"github.com/plus3/match3/processor"
	"github.com/plus3/match3/scheduler"
)

type stressOptions struct {
	Duration       time.Duration
	GCPauseMetrics bool
}

func newStressCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &stressOptions{}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Let the autoplayer hammer a board and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Duration, "duration", 10*time.Second, "the total duration the test should run for")
	cmd.Flags().BoolVar(&opts.GCPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")

	return cmd
}

func runStress(cmd *cobra.Command, rootOpts *rootOptions, opts *stressOptions) error {
	logger := rootOpts.logger
	logger.Info("starting stress test", "duration", opts.Duration)

	b, err := rootOpts.newBoard()
	if err != nil {
		return err
	}

	proc := processor.New(b,
		processor.WithLogger(logger),
		processor.WithCommandCapacity(rootOpts.cfg.CommandCapacity),
		processor.WithEventCapacity(rootOpts.cfg.EventCapacity),
	)
	player := autoplay.New(proc, rootOpts.rng(), autoplay.WithLogger(logger))

	sched := scheduler.New()
	sched.Register(proc)
	sched.Register(player)

	report := &Report{
		Duration: opts.Duration,
		Width:    b.Width(),
		Height:   b.Height(),
		GemTypes: len(b.Palette()),
		GCPause:  opts.GCPauseMetrics,
		TickTime: Stats{Samples: make([]time.Duration, 0)},
		printer:  newPrinter(),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Duration)
	defer cancel()

	start := time.Now()
	last := start
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := time.Since(last)
			last = time.Now()

			tickStart := time.Now()
			sched.Once(dt.Seconds())
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		}
	}

	report.TotalTime = time.Since(start)
	report.TickTime.Finalize()
	report.Scheduler = sched.GetStats()
	report.Processor = proc.Stats()
	report.Player = player.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("stress test finished", "ticks", report.Scheduler.Ticks)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}
