package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_flames/internal/core/elimination"
	"github.com/baditaflorin/go_flames/internal/server"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each category wins for counts 1 to 100",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		f, err := newFlames()
		if err != nil {
			return err
		}
		defer f.Close()

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, server.StatisticsResponse{
				Sequence:   f.Sequence().String(),
				ProbeMin:   elimination.ProbeMin,
				ProbeMax:   elimination.ProbeMax,
				Statistics: f.Distribution(),
			})
		}

		fmt.Fprintf(out, "%s %s, counts %d-%d\n",
			headingColor.Sprint("Sequence"), f.Sequence(), elimination.ProbeMin, elimination.ProbeMax)
		renderDistribution(out, f.Distribution(), "")
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "print the distribution as JSON")
}
