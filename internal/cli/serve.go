package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tobyward/taskroster/internal/web"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskroster HTTP API",
	Long: `Start the JSON API over HTTP.

The listen address comes from --addr, falling back to the listen_addr
config key (default :8080).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if People == nil || Tasks == nil || Coordinator == nil {
			return fmt.Errorf("services not initialized")
		}

		addr := serveAddrFlag
		if addr == "" && Config != nil {
			addr = Config.ListenAddr
		}
		if addr == "" {
			addr = ":8080"
		}

		srv := web.NewServer(People, Tasks, Coordinator)
		fmt.Printf("Listening on %s\n", addr)
		if err := srv.Run(addr); err != nil {
			return fmt.Errorf("running server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
