package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_flames/pkg/flames"
)

var batchCmd = &cobra.Command{
	Use:   "batch [FILE]",
	Short: "Classify one name pair per line",
	Long: `Read "name1,name2" (or tab-separated) pairs from FILE, or from stdin when
FILE is omitted or "-", and write one JSON object per pair to stdout in input
order. Blank lines and lines starting with '#' are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("workers", 0, "number of worker goroutines (0 = number of CPUs)")
	batchCmd.Flags().Bool("fast", false, "use the ASCII fast-path normalizer")
}

func runBatch(cmd *cobra.Command, args []string) error {
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}
	fast, err := cmd.Flags().GetBool("fast")
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	var opts []flames.Option
	if fast {
		opts = append(opts, flames.WithFastNormalizer())
	}
	f, err := newFlames(opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	summary, err := f.ProcessBatch(cmd.Context(), in, cmd.OutOrStdout(), flames.BatchConfig{Workers: workers})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d computed, %d failed, %d skipped in %s\n",
		headingColor.Sprint("Batch"), summary.Computed, summary.Failed, summary.Skipped, summary.Duration)
	return nil
}
