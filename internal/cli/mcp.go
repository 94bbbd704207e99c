package cli

import (
	"banctl/internal/mcp"

	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the administrative operations over MCP (stdio)",
		Long: "Start a Model Context Protocol server on stdin/stdout exposing the\n" +
			"ban operations as tools. Intended to be launched by an MCP client such\n" +
			"as an AI assistant runtime, not interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(app.admin, app.Logger)
			return server.Start()
		},
	}
}
