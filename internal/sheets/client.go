// ABOUTME: Google Sheets append client for todo export
// ABOUTME: One POST to the values append endpoint, rows are never read back
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harper/voicememo/internal/verr"
)

// DefaultBaseURL is the production Sheets API endpoint.
const DefaultBaseURL = "https://sheets.googleapis.com"

// Client appends rows to one spreadsheet. Export is append-only; nothing is
// ever read back from the sheet.
type Client struct {
	baseURL    string
	token      string
	sheetID    string
	httpClient *http.Client
}

// Config holds connection settings for the spreadsheet export.
type Config struct {
	BaseURL string // override for tests; defaults to the public API
	Token   string
	SheetID string
	Timeout time.Duration
}

// NewClient creates a sheets export client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.SheetID == "" {
		return nil, fmt.Errorf("sheet id is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		sheetID:    cfg.SheetID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

// AppendRows appends the given rows to the sheet.
func (c *Client) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	payload, err := json.Marshal(appendRequest{Values: rows})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v4/spreadsheets/%s/values/A1:append?valueInputOption=RAW", c.baseURL, c.sheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if verr.IsOffline(err) {
			return fmt.Errorf("appending rows: %v: %w", err, verr.ErrOffline)
		}
		return fmt.Errorf("appending rows: %v: %w", err, verr.ErrNetwork)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets append returned %d: %s: %w", resp.StatusCode, bytes.TrimSpace(msg), verr.ErrNetwork)
	}
	return nil
}
