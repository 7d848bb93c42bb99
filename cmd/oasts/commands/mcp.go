package commands

import (
	"github.com/erraggy/oasts/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate, operations and check tools over MCP (stdio)",
		Long: "Serve the generate, operations and check tools over the Model Context Protocol on stdio.\n\n" +
			"Defaults are read from OASTS_* environment variables, e.g. OASTS_CLIENT,\n" +
			"OASTS_MOCK_HANDLERS and OASTS_TYPE_TESTS.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
