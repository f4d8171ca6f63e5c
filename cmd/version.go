package cmd

import (
	"runtime"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of timelane.",
	Long: `Display version information including build details and the default
SQLite locations of the layout cache and run history.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("timelane CLI\n")
		cmd.Printf("  Version:  %s\n", version)
		cmd.Printf("  Commit:   %s\n", commit)
		cmd.Printf("  Built:    %s\n", date)
		cmd.Printf("  Runtime:  %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  Cache DB: %s\n", contract.GetCacheDBFilePath())
		cmd.Printf("  Runs DB:  %s\n", contract.GetRunsDBFilePath())
	},
}
