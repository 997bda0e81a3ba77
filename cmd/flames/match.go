package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_flames/internal/server"
	"github.com/baditaflorin/go_flames/internal/validate"
	"github.com/baditaflorin/go_flames/pkg/flames"
)

var matchCmd = &cobra.Command{
	Use:   "match NAME1 NAME2",
	Short: "Classify the relationship between two names",
	Long: `Validate both names, cancel the letters they share and print the
surviving FLAMES category together with the elimination order and the
distribution of winners over counts 1 to 100.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().Bool("json", false, "print the result as JSON")
	matchCmd.Flags().Bool("fast", false, "use the ASCII fast-path normalizer")
}

func runMatch(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	fast, err := cmd.Flags().GetBool("fast")
	if err != nil {
		return err
	}

	nameA, nameB, err := validate.Names(args[0], args[1])
	if err != nil {
		return err
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

	result, err := f.Compute(cmd.Context(), nameA, nameB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, server.NewResponse(result))
	}
	printResult(out, nameA, nameB, result)
	return nil
}

func printResult(w io.Writer, nameA, nameB string, result flames.Result) {
	fmt.Fprintf(w, "%s %s + %s\n", headingColor.Sprint("FLAMES"), nameA, nameB)
	fmt.Fprintf(w, "%s %d\n", mutedColor.Sprint("Remaining letters:"), result.Count)
	fmt.Fprintf(w, "%s %s\n", mutedColor.Sprint("Result:"), resultColor.Sprint(result.Meaning))
	if len(result.EliminationOrder) > 0 {
		renderTrace(w, result.EliminationOrder)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingColor.Sprint("Statistics (counts 1-100)"))
	renderDistribution(w, result.Statistics, result.Type)
}
