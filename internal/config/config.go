// ABOUTME: Centralized configuration for the voice memo pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the memo system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	WhisperModel   string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Pinecone settings
	PineconeKey       string
	PineconeIndexHost string
	PineconeNamespace string

	// Google Sheets settings
	SheetsToken string
	SheetID     string

	// Local settings
	DataDir         string
	RecorderBin     string
	VectorDimension int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnv("MEMO_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("MEMO_EMBEDDING_MODEL", "text-embedding-3-small"),
		WhisperModel:      getEnv("MEMO_WHISPER_MODEL", "whisper-1"),
		Timeout:           getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		PineconeKey:       os.Getenv("PINECONE_API_KEY"),
		PineconeIndexHost: os.Getenv("PINECONE_INDEX_HOST"),
		PineconeNamespace: os.Getenv("PINECONE_NAMESPACE"),
		SheetsToken:       os.Getenv("GOOGLE_SHEETS_TOKEN"),
		SheetID:           os.Getenv("GOOGLE_SHEET_ID"),
		DataDir:           os.Getenv("MEMO_DATA_DIR"),
		RecorderBin:       getEnv("MEMO_RECORDER_BIN", "ffmpeg"),
		VectorDimension:   getEnvInt("VECTOR_DIMENSION", 1536),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
