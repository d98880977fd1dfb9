// ABOUTME: HTTP client for the Pinecone-style remote vector index
// ABOUTME: Upsert, query, and delete scoped to a single namespace
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harper/voicememo/internal/models"
	"github.com/harper/voicememo/internal/verr"
)

// Client talks to a Pinecone-style vector index over its REST surface. All
// operations are scoped to one logical namespace; the default empty string is
// used throughout unless configured otherwise.
type Client struct {
	baseURL    string
	apiKey     string
	namespace  string
	httpClient *http.Client
}

// Config holds connection settings for the vector index.
type Config struct {
	// IndexHost is the index endpoint, e.g. https://myindex-abc123.svc.pinecone.io
	IndexHost string
	APIKey    string
	Namespace string
	Timeout   time.Duration
}

// NewClient creates a vector index client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("vector index host is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.IndexHost,
		apiKey:     cfg.APIKey,
		namespace:  cfg.Namespace,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type upsertRequest struct {
	Vectors   []models.Vector `json:"vectors"`
	Namespace string          `json:"namespace"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// Upsert inserts or replaces the entry keyed by v.ID and returns that id.
// The index assigns no ids of its own.
func (c *Client) Upsert(ctx context.Context, v models.Vector) (string, error) {
	req := upsertRequest{
		Vectors:   []models.Vector{v},
		Namespace: c.namespace,
	}

	var resp upsertResponse
	if err := c.post(ctx, "/vectors/upsert", req, &resp); err != nil {
		return "", fmt.Errorf("upserting vector %s: %w", v.ID, err)
	}
	return v.ID, nil
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace"`
}

type queryResponse struct {
	Matches []models.QueryMatch `json:"matches"`
}

// Query returns up to topK nearest entries ordered by descending similarity.
func (c *Client) Query(ctx context.Context, values []float32, topK int) ([]models.QueryMatch, error) {
	req := queryRequest{
		Vector:          values,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       c.namespace,
	}

	var resp queryResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	return resp.Matches, nil
}

type deleteRequest struct {
	IDs       []string `json:"ids"`
	Namespace string   `json:"namespace"`
}

// Delete removes the entry with the given id. Deleting an id that does not
// exist is not an error; the remote store's delete is idempotent.
func (c *Client) Delete(ctx context.Context, id string) error {
	req := deleteRequest{
		IDs:       []string{id},
		Namespace: c.namespace,
	}

	if err := c.post(ctx, "/vectors/delete", req, nil); err != nil {
		return fmt.Errorf("deleting vector %s: %w", id, err)
	}
	return nil
}

// post sends a JSON POST and decodes the response into out (if non-nil).
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if verr.IsOffline(err) {
			return fmt.Errorf("%v: %w", err, verr.ErrOffline)
		}
		return fmt.Errorf("%v: %w", err, verr.ErrNetwork)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s: %w", path, resp.StatusCode, bytes.TrimSpace(msg), verr.ErrNetwork)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %v: %w", path, err, verr.ErrNetwork)
	}
	return nil
}
