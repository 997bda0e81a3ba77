package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace COUNT",
	Short: "Show the elimination order for a raw count",
	Long: `Run a single elimination for COUNT and print which category is
removed at each step. A count of zero means the names cancelled out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("count must be an integer: %w", err)
		}
		if count < 0 {
			return fmt.Errorf("count must not be negative, got %d", count)
		}

		f, err := newFlames()
		if err != nil {
			return err
		}
		defer f.Close()

		outcome := f.Eliminate(count)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d over %s\n", headingColor.Sprint("Count"), count, f.Sequence())
		if len(outcome.Eliminated) > 0 {
			renderTrace(out, outcome.Eliminated)
		}
		fmt.Fprintf(out, "%s %s\n", mutedColor.Sprint("Survivor:"), resultColor.Sprint(outcome.Survivor.Meaning()))
		return nil
	},
}
