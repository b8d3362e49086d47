package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archivelabs/ragdex/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for exposing the document index over the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Expose the document index to MCP clients.

The server offers search, inject and status tools backed by the local
index. By default it speaks JSON-RPC over stdio, the transport MCP
clients such as Claude Desktop spawn the binary with. Use --port to
serve over HTTP instead.

Examples:
  # Stdio mode (default)
  ragdex mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ragdex mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Index == nil {
		return errors.New("index service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Index:    services.Index,
		Injector: services.Injector,
		Registry: services.Registry,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
