// ABOUTME: Shared wiring for CLI commands
// ABOUTME: Builds the store, clients, and pipeline from configuration
package commands

import (
	"fmt"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/voicememo/internal/config"
	"github.com/harper/voicememo/internal/llm"
	"github.com/harper/voicememo/internal/pipeline"
	"github.com/harper/voicememo/internal/storage/sqlite"
	"github.com/harper/voicememo/internal/vector"
)

// deps bundles everything a command might need. Clients that are not
// configured stay nil; commands check for what they use.
type deps struct {
	cfg          *config.Config
	db           *sqlite.DB
	store        *sqlite.MemoStore
	llmClient    *llm.Client
	vectorClient *vector.Client
}

// openDeps loads configuration and opens the store plus whichever remote
// clients are configured. The caller must Close the returned deps.
func openDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	dbPath := sqlite.DefaultDBPath()
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "memos.db")
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening memo store: %w", err)
	}

	d := &deps{
		cfg:   cfg,
		db:    db,
		store: sqlite.NewMemoStore(db),
	}

	if cfg.OpenAIKey != "" {
		clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
		clientCfg.ChatModel = cfg.ChatModel
		clientCfg.EmbeddingModel = openai.EmbeddingModel(cfg.EmbeddingModel)
		clientCfg.WhisperModel = cfg.WhisperModel
		clientCfg.Timeout = cfg.Timeout
		clientCfg.MaxRetries = cfg.MaxRetries
		clientCfg.RetryDelay = cfg.RetryDelay
		d.llmClient, err = llm.NewClientWithConfig(clientCfg)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating OpenAI client: %w", err)
		}
	}

	if cfg.PineconeIndexHost != "" {
		d.vectorClient, err = vector.NewClient(vector.Config{
			IndexHost: cfg.PineconeIndexHost,
			APIKey:    cfg.PineconeKey,
			Namespace: cfg.PineconeNamespace,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating vector index client: %w", err)
		}
	}

	return d, nil
}

// repository builds the pipeline over the opened collaborators. Unconfigured
// clients become nil interfaces so stage preconditions stay checkable.
func (d *deps) repository() *pipeline.Repository {
	var (
		tr pipeline.Transcriber
		em pipeline.Embedder
		ix pipeline.VectorIndex
	)
	if d.llmClient != nil {
		tr = d.llmClient
		em = d.llmClient
	}
	if d.vectorClient != nil {
		ix = d.vectorClient
	}
	return pipeline.NewRepository(d.store, tr, em, ix)
}

// scratchDir is where in-flight recordings land before the pipeline owns them.
func (d *deps) scratchDir() string {
	if d.cfg.DataDir != "" {
		return filepath.Join(d.cfg.DataDir, "scratch")
	}
	return filepath.Join(sqlite.DefaultDataDir(), "scratch")
}

// Close releases the store handle.
func (d *deps) Close() {
	_ = d.db.Close()
}

// requireLLM fails fast for commands that need the OpenAI client.
func (d *deps) requireLLM() (*llm.Client, error) {
	if d.llmClient == nil {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return d.llmClient, nil
}

// requireVector fails fast for commands that need the vector index.
func (d *deps) requireVector() (*vector.Client, error) {
	if d.vectorClient == nil {
		return nil, fmt.Errorf("PINECONE_INDEX_HOST is not set")
	}
	return d.vectorClient, nil
}
