// Package remoteimage downloads images referenced by URL.
package remoteimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetcher downloads image bytes over HTTP
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewFetcher creates a fetcher. Responses larger than maxBytes are rejected; zero means unlimited.
func NewFetcher(httpClient *http.Client, maxBytes int64) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{httpClient: httpClient, maxBytes: maxBytes}
}

// Fetch returns the body and declared Content-Type of url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("failed to fetch image: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", f.maxBytes)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
