// Package sanity is a minimal HTTP client for the content store's query API.
// The client is constructed explicitly and passed to its consumers; there is
// no package-level singleton.
package sanity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
)

// Perspectives select published-only or draft-inclusive document state.
const (
	PerspectivePublished = "published"
	PerspectiveDrafts    = "drafts"
)

// Config holds the connection settings for one project/dataset pair.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // e.g. "v2024-01-01"
	Token      string // viewer token, required for draft reads
	UseCDN     bool
}

// QueryOptions select the document state for a single query. They are derived
// from the preview session, not from client construction.
type QueryOptions struct {
	Perspective string
	Stega       bool   // visual-editing encoding, applied by the rendering layer
	Token       string // overrides the client token when set
}

// Result is one query response.
type Result struct {
	Data        any
	Perspective string
	Ms          float64
}

// APIError is a non-2xx response from the query endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content store returned %d: %s", e.StatusCode, e.Message)
}

// Client queries the content store over HTTP.
type Client struct {
	queryURL   string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the given project and dataset.
func NewClient(cfg Config) *Client {
	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	return &Client{
		queryURL: fmt.Sprintf("https://%s.%s/%s/data/query/%s", cfg.ProjectID, host, cfg.APIVersion, cfg.Dataset),
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type queryRequest struct {
	Query  string         `json:"query"`
	Params map[string]any `json:"params,omitempty"`
}

type queryResponse struct {
	Result any     `json:"result"`
	Ms     float64 `json:"ms"`
}

// Fetch runs one query with the given parameter mapping. Cancellation is
// governed by ctx; there is no retry.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, opt QueryOptions) (*Result, error) {
	perspective := opt.Perspective
	if perspective == "" {
		perspective = PerspectivePublished
	}

	body, err := json.Marshal(queryRequest{Query: query, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	reqURL := c.queryURL + "?perspective=" + url.QueryEscape(perspective)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	token := opt.Token
	if token == "" {
		token = c.token
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var qr queryResponse
	if err := json.Unmarshal(raw, &qr); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &Result{Data: qr.Result, Perspective: perspective, Ms: qr.Ms}, nil
}
