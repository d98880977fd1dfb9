// ABOUTME: OpenAI client for Whisper transcription, embeddings, and todo extraction
// ABOUTME: Uses whisper-1, text-embedding-3-small, and gpt-4o-mini by default (configurable)
package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/util"
	"github.com/harper/voicememo/internal/verr"
)

const (
	// DefaultChatModel is the default model for todo extraction
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultWhisperModel is the default model for speech-to-text
	DefaultWhisperModel = "whisper-1"
)

// acceptedAudioExtensions lists the audio formats the speech API accepts.
// Anything else is rejected locally, before any network call.
var acceptedAudioExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string // override for tests
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	WhisperModel   string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("MEMO_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      chatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		WhisperModel:   DefaultWhisperModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API client with retry logic for the memo pipeline
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	whisperModel   string
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with the given API key using default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new OpenAI client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	apiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		apiConfig.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	whisperModel := config.WhisperModel
	if whisperModel == "" {
		whisperModel = DefaultWhisperModel
	}

	return &Client{
		client:         openai.NewClientWithConfig(apiConfig),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		whisperModel:   whisperModel,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// Transcribe uploads an audio file to the speech API and returns the
// transcription text verbatim. The file must exist and carry an accepted
// audio extension; both are checked before any network call. Failures are
// not retried here: retry policy belongs to the caller, which can re-run the
// transcription stage against the same memo.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("audio file %s: %w", audioPath, verr.ErrNotFound)
		}
		return "", fmt.Errorf("audio file %s: %v: %w", audioPath, err, verr.ErrIO)
	}

	ext := strings.ToLower(filepath.Ext(audioPath))
	if !acceptedAudioExtensions[ext] {
		return "", fmt.Errorf("audio file %s has extension %q: %w", audioPath, ext, verr.ErrUnsupportedFormat)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %v: %w", err, verr.ErrNetwork)
	}

	return resp.Text, nil
}

// GenerateEmbedding generates an embedding vector for the given text. Empty
// input is accepted; callers with an empty-text policy enforce it themselves.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		return resp.Data[0].Embedding, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %v: %w",
		c.maxRetries+1, lastErr, verr.ErrNetwork)
}

// extractionSystemPrompt fixes the output contract for todo extraction.
const extractionSystemPrompt = `Extract a list of todo items with best time estimates and project/area context from the transcript the user provides.
Respond in JSON format as { "todos": [ { "item": "...", "timeEstimate": "...", "project": "..." } ] }.
Only include clear, actionable items from the transcript.
For each item:
- Make it specific and actionable
- Provide a realistic time estimate
- Format time estimates consistently (e.g., "30 minutes", "2 hours", "1 day")
- Include the project or area context if mentioned (e.g., "Work", "Personal", "Home")
- If no project is mentioned, use "Personal" as default`

// ExtractTodos sends the transcript to the chat endpoint and parses the
// structured response into a todo list. Unlike the pipeline stages, this
// surface propagates its errors directly: empty responses and malformed JSON
// escape to the caller rather than being wrapped in a stage result.
func (c *Client) ExtractTodos(ctx context.Context, transcript string) (models.TodoList, error) {
	var (
		content string
		lastErr error
		ok      bool
	)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: extractionSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Transcript:\n%s", transcript),
				},
			},
			Temperature: 0.3,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		content = resp.Choices[0].Message.Content
		ok = true
		break
	}

	if !ok {
		return models.TodoList{}, fmt.Errorf("failed to extract todos after %d attempts: %v: %w",
			c.maxRetries+1, lastErr, verr.ErrNetwork)
	}

	return ParseTodoList(content)
}
