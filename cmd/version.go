package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/version"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print fleetdash version along with dependency information.",
	Run: func(_ *cobra.Command, _ []string) {
		v := version.Current()

		fmt.Printf(
			"commit: %s\nbranch: %s\ngit summary: %s\nbuildDate: %s\nversion: %s\nGo version: %s\nnats.go version: %s\n",
			v.GitCommit, v.GitBranch, v.GitSummary, v.BuildDate, v.AppVersion, v.GoVersion, v.NatsGoVersion)
	},
}

func init() {
	rootCmd.AddCommand(cmdVersion)
}
