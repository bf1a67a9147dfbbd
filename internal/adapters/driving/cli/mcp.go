package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search the
catalog, autocomplete queries and fetch recommendations.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Shopper activity is saved periodically while the server runs, and a
catalog file set with 'shopsearch settings catalog' is reloaded on change.

Examples:
  # Stdio mode (default)
  shopsearch mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  shopsearch mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "shopsearch": {
        "command": "/path/to/shopsearch",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if catalogSource == nil {
		return errNoCatalog
	}

	ports := &mcp.Ports{
		Search:          searchService,
		Catalog:         catalogSource,
		Personalization: personalizationService,
		Profiles:        profileService,
		DefaultUserID:   currentUser(),
	}

	server, err := mcp.NewServer(ports, mcp.WithRateLimit(mcpRateLimit()))
	if err != nil {
		return err
	}

	stop := startBackground(commandContext(cmd))
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	return server.Run(commandContext(cmd))
}

// mcpRateLimit reads the tool-call limit from settings, falling back to
// the server defaults.
func mcpRateLimit() (float64, int) {
	defaults := domain.DefaultAppSettings().MCP
	if settingsService == nil {
		return defaults.RatePerSecond, defaults.Burst
	}
	settings, err := settingsService.Get()
	if err != nil {
		return defaults.RatePerSecond, defaults.Burst
	}
	return settings.MCP.RatePerSecond, settings.MCP.Burst
}
