package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/pkg/flames"
)

var rootCmd = &cobra.Command{
	Use:   "flames",
	Short: "Play FLAMES with two names",
	Long: `flames cancels the letters two names share and counts the rest off
against Friends, Love, Affection, Marriage, Enemies and Siblings until one
category is left.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

var (
	noColor      bool
	verbose      bool
	sequenceFlag string
)

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "write debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&sequenceFlag, "sequence", domain.FLAMES.String(), "category order used for elimination")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newFlames builds an engine from the persistent flags.
func newFlames(extra ...flames.Option) (*flames.Flames, error) {
	seq, err := domain.ParseSequence(sequenceFlag)
	if err != nil {
		return nil, err
	}

	var output io.Writer = io.Discard
	level := slog.LevelInfo
	if verbose {
		output = os.Stderr
		level = slog.LevelDebug
	}
	lg, err := logger.New(logger.ConsoleConfig(output, level))
	if err != nil {
		return nil, err
	}

	opts := append([]flames.Option{
		flames.WithLogger(lg),
		flames.WithSequence(seq),
	}, extra...)
	return flames.New(opts...)
}
