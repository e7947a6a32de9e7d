package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPrintCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Generate a settled board and print it with its hint count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.newBoard()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, b)
			fmt.Fprintf(out, "hints: %d\n", len(b.MatchingMoves()))
			return nil
		},
	}
}
