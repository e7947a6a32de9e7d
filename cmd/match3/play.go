package main

import (
	"github.com/spf13/cobra"

	"github.com/plus3/match3/processor"
	"github.com/plus3/match3/scenario"
)

func newPlayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Replay a scenario file and print its event trace",
		Long: `Replay a scenario file through the command processor.

The scenario fixes the starting rows and the random values used for
refills, so the printed trace is the same on every run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			result, err := scenario.Run(s,
				processor.WithLogger(opts.logger),
				processor.WithCommandCapacity(opts.cfg.CommandCapacity),
				processor.WithEventCapacity(opts.cfg.EventCapacity),
			)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(result.Render())
			return err
		},
	}
}
