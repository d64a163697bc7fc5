package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	dv "github.com/definexml/validator"
)

// Build-time variables set via ldflags
var (
	commit = "unknown"
	date   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "define-validator %s (%s, %s) %s/%s\n",
			dv.Version, commit, date, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
