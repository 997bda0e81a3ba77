package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flames version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "pretty":
			fmt.Fprintf(out, "%s %s (%s, %s/%s)\n",
				headingColor.Sprint("flames"), version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		case "json":
			return writeJSON(out, map[string]string{
				"version": version,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			})
		default:
			return fmt.Errorf("unknown format %q (want pretty or json)", format)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
