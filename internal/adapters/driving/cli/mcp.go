package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgtool/internal/adapters/driving/mcp"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can build
knowledge graphs and pull topic context.

Tools: discover_topics, build_graph, extract_context.
Resources: kgtool://graph and kgtool://graph/nodes/{nodeId}.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  kgtool mcp serve

  # Serve an existing graph over HTTP
  kgtool mcp serve --graph output/graph.json --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("graph", "", "graph JSON file to serve before any build_graph call")
	mcpServeCmd.Flags().String("sqlite", "", "serve the latest graph from the SQLite database in this directory")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	graphPath, _ := cmd.Flags().GetString("graph")
	dbDir, _ := cmd.Flags().GetString("sqlite")

	graphs := memory.NewGraphStore()
	if graphPath != "" || dbDir != "" {
		g, err := loadGraph(cmd.Context(), graphPath, dbDir, "")
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if g != nil {
			if err := graphs.Save(cmd.Context(), g); err != nil {
				return err
			}
		}
	}

	ports := &mcp.Ports{
		Graph:      graphService,
		Topics:     topicService,
		Context:    contextService,
		Settings:   settingsService,
		GraphStore: graphs,
		TopicStore: memory.NewTopicStore(),
		Renderer:   renderer,
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
