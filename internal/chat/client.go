// ABOUTME: HTTP client for the backend chatbot endpoint
// ABOUTME: Posts a query with the page URL and decodes the optional response text

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidResponse is returned when the body is not JSON.
var ErrInvalidResponse = errors.New("invalid chatbot response")

// Query is the request body of POST /chatbot.
type Query struct {
	Query string `json:"query"`
	URL   string `json:"url"`
}

// Reply is the decoded chatbot answer. Response is empty when the backend
// sent none.
type Reply struct {
	Response string
}

// Asker sends a query to the chatbot.
type Asker interface {
	Ask(ctx context.Context, q Query) (Reply, error)
}

// Client is the HTTP Asker. It sets no timeout of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. Pass nil for http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ask posts q to {base}/chatbot. The status code is not inspected: any JSON
// body is decoded and a non-JSON body is an error.
func (c *Client) Ask(ctx context.Context, q Query) (Reply, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return Reply{}, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chatbot", bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("posting query: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("reading response: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return Reply{}, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	res := gjson.GetBytes(raw, "response")
	if !res.Exists() || res.Type == gjson.Null {
		return Reply{}, nil
	}
	return Reply{Response: res.String()}, nil
}
