package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPRelay calls the relay endpoints of a running aura server
type HTTPRelay struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPRelay creates a relay client for the server at baseURL
func NewHTTPRelay(httpClient *http.Client, baseURL string) *HTTPRelay {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPRelay{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

type relayErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// UploadImage posts a data URI to the upload relay and returns the hosted URL
func (c *HTTPRelay) UploadImage(ctx context.Context, imageData string) (string, error) {
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	err := c.post(ctx, "/api/upload-image-to-imgbb", map[string]string{"imageData": imageData}, &out)
	if err != nil {
		return "", fmt.Errorf("Server-side image upload failed: %s", err.Error())
	}
	if out.ImageURL == "" {
		return "", errors.New("Server-side image upload failed: no image URL returned")
	}
	return out.ImageURL, nil
}

// GenerateAura posts the prompt and image URL to the generation relay
func (c *HTTPRelay) GenerateAura(ctx context.Context, prompt, imageURL string) ([]string, error) {
	var out struct {
		relayErrorBody
		Output []string `json:"output"`
	}
	err := c.post(ctx, "/api/generate-aura", map[string]string{"prompt": prompt, "imageUrl": imageURL}, &out)
	if err != nil {
		return nil, fmt.Errorf("AI generation failed: %s", err.Error())
	}
	if out.Error != "" || len(out.Output) == 0 {
		details := out.Details
		if details == "" {
			details = "No image output from AI."
		}
		return nil, fmt.Errorf("AI generation failed: %s", details)
	}
	return out.Output, nil
}

// post sends a JSON body and decodes a JSON reply. Non-2xx replies become
// an error carrying the server's details, or the status text.
func (c *HTTPRelay) post(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body relayErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Details != "" {
			return errors.New(body.Details)
		}
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
