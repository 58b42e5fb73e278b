package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskroster",
	Short: "taskroster - a task tracker with a managed people roster",
	Long: `taskroster is a small task-tracking service. It records tasks, marks them
done, and assigns each task to at most one person from a managed roster,
keeping names unique and assignments consistent under concurrent use.

It can run as an HTTP API (taskroster serve), as an MCP server for AI
assistants (taskroster mcp serve), or be driven directly from the command
line.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskroster %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
