// ABOUTME: MCP tool handler implementations for the voice memo server
// ABOUTME: Thin adapters from tool requests onto the pipeline and LLM client
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/pipeline"
)

// Embedder converts query text into an embedding for search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Querier runs similarity search against the vector index.
type Querier interface {
	Query(ctx context.Context, values []float32, topK int) ([]models.QueryMatch, error)
}

// TodoExtractor turns a transcript into a structured todo list.
type TodoExtractor interface {
	ExtractTodos(ctx context.Context, transcript string) (models.TodoList, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	repo      *pipeline.Repository
	embedder  Embedder
	querier   Querier
	extractor TodoExtractor
}

// NewHandlers wires the tool handlers to their collaborators
func NewHandlers(repo *pipeline.Repository, embedder Embedder, querier Querier, extractor TodoExtractor) *Handlers {
	return &Handlers{
		repo:      repo,
		embedder:  embedder,
		querier:   querier,
		extractor: extractor,
	}
}

type memoSummary struct {
	ID            int64  `json:"id"`
	CreatedAt     string `json:"created_at"`
	Transcription string `json:"transcription,omitempty"`
	Indexed       bool   `json:"indexed"`
}

// ListMemos handles the list_memos tool
func (h *Handlers) ListMemos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := h.repo.GetAllMemos(ctx)
	if res.IsFailure() {
		return mcp.NewToolResultError(fmt.Sprintf("listing memos failed: %v", res.Err())), nil
	}

	memos := res.MustValue()
	summaries := make([]memoSummary, 0, len(memos))
	for _, m := range memos {
		summaries = append(summaries, memoSummary{
			ID:            m.ID,
			CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
			Transcription: m.Transcription,
			Indexed:       m.VectorID != "",
		})
	}

	payload, err := json.Marshal(map[string]interface{}{"memos": summaries, "count": len(summaries)})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

type searchHit struct {
	MemoID     string  `json:"memo_id"`
	Score      float64 `json:"score"`
	Transcript string  `json:"transcript,omitempty"`
}

// SearchMemos handles the search_memos tool
func (h *Handlers) SearchMemos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.embedder == nil || h.querier == nil {
		return mcp.NewToolResultError("semantic search is not configured (missing OpenAI or vector index settings)"), nil
	}

	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)
	if maxResults < 1 {
		maxResults = 5
	}

	embedding, err := h.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding query failed: %v", err)), nil
	}

	matches, err := h.querier.Query(ctx, embedding, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("vector search failed: %v", err)), nil
	}

	hits := make([]searchHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, searchHit{
			MemoID:     m.ID,
			Score:      m.Score,
			Transcript: m.Metadata["transcript"],
		})
	}

	payload, err := json.Marshal(map[string]interface{}{"results": hits, "count": len(hits)})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ExtractTodos handles the extract_todos tool
func (h *Handlers) ExtractTodos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.extractor == nil {
		return mcp.NewToolResultError("todo extraction is not configured (missing OpenAI settings)"), nil
	}

	transcript, err := request.RequireString("transcript")
	if err != nil {
		return mcp.NewToolResultError("transcript argument is required and must be a string"), nil
	}
	if transcript == "" {
		return mcp.NewToolResultError("transcript must not be empty"), nil
	}

	list, err := h.extractor.ExtractTodos(ctx, transcript)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("todo extraction failed: %v", err)), nil
	}

	payload, err := json.Marshal(list)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
