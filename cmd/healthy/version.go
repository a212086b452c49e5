package healthy

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/saadjs/healthy-cli/cmd/healthy.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	if jsonOutput {
		_ = printJSON(cmd, map[string]string{"version": version, "commit": commit, "date": date, "go": runtime.Version()})
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "healthy %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
