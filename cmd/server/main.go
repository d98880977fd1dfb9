// ABOUTME: Main entry point for the voice memo MCP server with stdio transport
// ABOUTME: Initializes storage, clients, and MCP server with all tools
package main

import (
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/voicememo/internal/config"
	"github.com/harper/voicememo/internal/llm"
	"github.com/harper/voicememo/internal/mcp"
	"github.com/harper/voicememo/internal/pipeline"
	"github.com/harper/voicememo/internal/storage/sqlite"
	"github.com/harper/voicememo/internal/vector"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dbPath := sqlite.DefaultDBPath()
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "memos.db")
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open memo store: %v", err)
	}
	defer func() { _ = db.Close() }()
	store := sqlite.NewMemoStore(db)

	var (
		llmClient    *llm.Client
		vectorClient *vector.Client
	)

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - search and todo extraction will not work")
	} else {
		clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
		clientCfg.ChatModel = cfg.ChatModel
		clientCfg.EmbeddingModel = openai.EmbeddingModel(cfg.EmbeddingModel)
		clientCfg.WhisperModel = cfg.WhisperModel
		clientCfg.Timeout = cfg.Timeout
		clientCfg.MaxRetries = cfg.MaxRetries
		clientCfg.RetryDelay = cfg.RetryDelay
		llmClient, err = llm.NewClientWithConfig(clientCfg)
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
	}

	if cfg.PineconeIndexHost == "" {
		log.Println("Warning: PINECONE_INDEX_HOST not set - semantic search will not work")
	} else {
		vectorClient, err = vector.NewClient(vector.Config{
			IndexHost: cfg.PineconeIndexHost,
			APIKey:    cfg.PineconeKey,
			Namespace: cfg.PineconeNamespace,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to create vector index client: %v", err)
		}
	}

	var (
		transcriber pipeline.Transcriber
		pipeEmbed   pipeline.Embedder
		index       pipeline.VectorIndex
		embedder    mcp.Embedder
		querier     mcp.Querier
		extractor   mcp.TodoExtractor
	)
	if llmClient != nil {
		transcriber = llmClient
		pipeEmbed = llmClient
		embedder = llmClient
		extractor = llmClient
	}
	if vectorClient != nil {
		index = vectorClient
		querier = vectorClient
	}
	repo := pipeline.NewRepository(store, transcriber, pipeEmbed, index)
	handlers := mcp.NewHandlers(repo, embedder, querier, extractor)

	server := mcpserver.NewMCPServer(
		"Voice Memo Pipeline",
		"0.1.0",
	)
	mcp.RegisterTools(server, handlers)

	log.Println("Voice memo MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
