package drivebc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches record lists from DriveBC JSON endpoints. The client owns
// its timeout; callers decide how to treat a failed fetch.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout. A zero or
// negative timeout falls back to 30 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRecords fetches a JSON array of records from url.
// Returns nil with no error if url is empty (allows optional sources).
func (c *Client) FetchRecords(ctx context.Context, url string) ([]Record, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", url, err)
	}
	return records, nil
}
