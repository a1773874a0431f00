// ABOUTME: HTTP fetch of the dashboard aggregate payload
// ABOUTME: Decodes the body regardless of status since errors arrive as JSON

package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fetcher retrieves and decodes the dashboard payload.
type Fetcher interface {
	Fetch(ctx context.Context) (Payload, error)
}

// Client fetches {base}/dashboard-data.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client. Pass nil for http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch issues one GET and decodes the payload.
func (c *Client) Fetch(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dashboard-data", nil)
	if err != nil {
		return Payload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("fetching dashboard data: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, fmt.Errorf("reading dashboard data: %w", err)
	}

	p, err := ParsePayload(raw)
	if err != nil {
		return Payload{}, fmt.Errorf("decoding dashboard data (status %d): %w", resp.StatusCode, err)
	}
	return p, nil
}
