// Package docgen calls the invoice rendering service.
package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gstsync/internal/config"
	"gstsync/internal/domain"
	"gstsync/internal/port"
)

const defaultTimeout = 30 * time.Second

// Client implements port.DocumentGenerator over HTTP.
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

var _ port.DocumentGenerator = (*Client)(nil)

// NewClient creates a rendering service client from config.
func NewClient(cfg *config.DocGenConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Shop     string                  `json:"shop"`
	Document *domain.InvoiceDocument `json:"document"`
}

func (c *Client) Generate(ctx context.Context, shop string, doc *domain.InvoiceDocument) (*domain.GeneratedDocument, error) {
	if c.url == "" {
		return nil, fmt.Errorf("docgen: no renderer url configured")
	}

	bodyBytes, err := json.Marshal(generateRequest{Shop: shop, Document: doc})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling renderer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("renderer error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var out domain.GeneratedDocument
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if out.DocumentRef == "" {
		return nil, fmt.Errorf("renderer returned no document reference")
	}
	return &out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
