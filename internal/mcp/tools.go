// ABOUTME: MCP tool definitions and registration for the voice memo server
// ABOUTME: Exposes memo listing, semantic search, and todo extraction to agents
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, handlers *Handlers) {
	// 1. list_memos - all memos, newest first
	server.AddTool(mcp.Tool{
		Name:        "list_memos",
		Description: "List all voice memos, newest first, with their transcriptions and processing state.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListMemos)

	// 2. search_memos - semantic search over transcribed memos
	server.AddTool(mcp.Tool{
		Name:        "search_memos",
		Description: "Semantic search over transcribed voice memos via the vector index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchMemos)

	// 3. extract_todos - structured todo extraction from a transcript
	server.AddTool(mcp.Tool{
		Name:        "extract_todos",
		Description: "Extract actionable todo items (item, timeEstimate, project) from a transcript.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"transcript": map[string]interface{}{
					"type":        "string",
					"description": "Transcript text to extract todos from",
				},
			},
			Required: []string{"transcript"},
		},
	}, handlers.ExtractTodos)
}
