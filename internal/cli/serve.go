package cli

import (
	"github.com/spf13/cobra"

	"github.com/skrillsdev/skrills/internal/mcpserver"
)

// NewServeCmd creates the serve command: run as an MCP server over stdio,
// binding the same validator/depresolver/sync core the CLI commands use.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve validate/resolve-dependencies/sync as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := buildCache(cmd)
			if err != nil {
				return err
			}
			// Prime the cache once up front so the first tool call doesn't
			// pay a cold-start rebuild.
			if _, err := cache.Get(); err != nil {
				return err
			}

			srv := mcpserver.New(cache, adapters(cmd))
			return srv.ServeStdio()
		},
	}
}
