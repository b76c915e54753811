package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Template identifiers understood by the rendering service.
const (
	TemplateCurrent  = "weather_current"
	TemplateForecast = "weather_forecast"
)

var ErrNotConfigured = errors.New("render endpoint not configured")

// Renderer turns a template id and payload into a reference to a rendered artifact.
type Renderer interface {
	Render(ctx context.Context, templateID string, data map[string]any) (string, error)
}

// Client posts payloads to an external HTML-to-image service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient gets a 10s timeout client.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: httpClient,
	}
}

// Render posts {"template": id, "data": payload} and returns the "url" of the result.
func (c *Client) Render(ctx context.Context, templateID string, data map[string]any) (string, error) {
	if c.endpoint == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(struct {
		Template string         `json:"template"`
		Data     map[string]any `json:"data"`
	}{Template: templateID, Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("render response has no url")
	}
	return out.URL, nil
}
