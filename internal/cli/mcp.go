package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	rostermcp "github.com/tobyward/taskroster/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the taskroster MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the taskroster MCP server on stdio",
	Long: `Start the taskroster MCP server on stdio transport.

The server exposes the roster as MCP tools that AI coding assistants can
call: list_people, list_tasks, create_task, assign_task.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil || Tasks == nil || Coordinator == nil {
			return fmt.Errorf("services not initialized")
		}

		srv := rostermcp.NewServer(People, Tasks, Coordinator, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
