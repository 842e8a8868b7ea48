package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTransport marks an upstream retrieval failure: network error, timeout
// or non-2xx status. The refresh scheduler recovers from it by keeping the
// previously published snapshot.
var ErrTransport = errors.New("feed transport error")

// apiKeyHeader carries the upstream credential, as required by the MTA
// GTFS-RT endpoints.
const apiKeyHeader = "x-api-key"

// Client is an HTTP client for fetching GTFS-RT protobuf data from a single
// authenticated endpoint. It does no decoding and no retries; retry policy
// belongs to the caller's schedule.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client bound to one feed URL and credential.
func NewClient(url, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch performs one GET against the feed URL and returns the raw body.
// The context bounds the whole retrieval; cancellation and deadline
// overruns surface as ErrTransport like any other network failure.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", ErrTransport, c.url, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrTransport, c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrTransport, resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body from %s: %v", ErrTransport, c.url, err)
	}
	return body, nil
}
