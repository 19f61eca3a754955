package imgbb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

const (
	// DefaultBaseURL is the public ImgBB API host
	DefaultBaseURL = "https://api.imgbb.com"

	unknownError = "Unknown ImgBB error"
)

// Client represents the ImgBB upload API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new ImgBB API client
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a raw base64 payload (no data URI header) and returns the hosted image URL
func (c *Client) Upload(ctx context.Context, base64Image string) (*domain.UploadedImageRef, error) {
	endpoint := c.baseURL + "/1/upload?" + url.Values{"key": {c.apiKey}}.Encode()
	form := url.Values{"image": {base64Image}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewUpstreamError("ImgBB upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewUpstreamError("ImgBB upload failed: "+errorDetails(body), nil)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domain.NewUpstreamError("ImgBB upload failed: invalid response", err)
	}

	if !result.Success {
		message := unknownError
		if result.Error != nil && result.Error.Message != "" {
			message = result.Error.Message
		}
		return nil, domain.NewSemanticError(message)
	}
	if result.Data.URL == "" {
		return nil, domain.NewSemanticError("ImgBB response did not include an image URL")
	}

	return &domain.UploadedImageRef{URL: result.Data.URL}, nil
}

// errorDetails extracts error.message from a JSON error body, falling back to the raw text
func errorDetails(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}
