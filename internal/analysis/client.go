package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go-table-insights/internal/model"
)

// Path of the search-query endpoint on the analysis service.
const searchQueryPath = "/api/analyze-search-query"

// Client calls the external analysis service over HTTP. Every request carries
// the caller's context and the client enforces a bounded timeout, so a hung
// service degrades to the pattern fallback instead of blocking a job forever.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// AnalyzeSearchQuery submits one search-query analysis request. Any transport
// failure, non-2xx status, or undecodable body is returned as an error; the
// caller decides how to degrade.
func (c *Client) AnalyzeSearchQuery(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchQueryPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analysis service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var envelope model.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	slog.Debug("analysis response received",
		"query", req.Query,
		"success", envelope.Success,
		"duration", time.Since(start))
	return &envelope, nil
}
