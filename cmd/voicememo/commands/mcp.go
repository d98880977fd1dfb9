// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to browse and search memos via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/voicememo/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the memo pipeline as an MCP (Model Context Protocol) server over
stdio, exposing list, semantic search, and todo extraction as tools.`,
		RunE: runMCPServe,
		Example: `  # Start MCP server (typically called by an agent host)
  voicememo mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "voicememo": {
  #       "command": "voicememo",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.llmClient == nil {
		log.Println("Warning: OPENAI_API_KEY not set - search and todo extraction will not work")
	}
	if d.vectorClient == nil {
		log.Println("Warning: PINECONE_INDEX_HOST not set - search will not work")
	}

	var (
		embedder  mcp.Embedder
		querier   mcp.Querier
		extractor mcp.TodoExtractor
	)
	if d.llmClient != nil {
		embedder = d.llmClient
		extractor = d.llmClient
	}
	if d.vectorClient != nil {
		querier = d.vectorClient
	}
	handlers := mcp.NewHandlers(d.repository(), embedder, querier, extractor)

	server := mcpserver.NewMCPServer(
		"Voice Memo Pipeline",
		"0.1.0",
	)
	mcp.RegisterTools(server, handlers)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Voice memo MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
