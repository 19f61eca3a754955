package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

const (
	// DefaultBaseURL is the hosted Inference API
	DefaultBaseURL = "https://api-inference.huggingface.co"
	// DefaultModelID is the SDXL base model used for image-to-image generation
	DefaultModelID = "stabilityai/stable-diffusion-xl-base-1.0"

	defaultOutputType = "image/png"
)

// Client represents the Hugging Face Inference API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	modelID    string
	apiKey     string
}

// NewClient creates a new Hugging Face Inference API client
func NewClient(httpClient *http.Client, baseURL, modelID, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelID == "" {
		modelID = DefaultModelID
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		modelID:    modelID,
		apiKey:     apiKey,
	}
}

type inferenceParameters struct {
	Image             string  `json:"image"`
	Strength          float64 `json:"strength"`
	NumInferenceSteps int     `json:"num_inference_steps"`
}

type inferencePayload struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

// Generate submits the prompt and init image and returns the raw generated image
func (c *Client) Generate(ctx context.Context, req domain.InferenceRequest) (*domain.InferenceResponse, error) {
	payload, err := json.Marshal(inferencePayload{
		Inputs: req.Prompt,
		Parameters: inferenceParameters{
			Image:             req.ImageDataURI,
			Strength:          req.Strength,
			NumInferenceSteps: req.NumInferenceSteps,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.modelID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewUpstreamError("Hugging Face API failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError("Hugging Face API failed: reading response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewUpstreamError("Hugging Face API failed: "+errorDetails(body), nil)
	}

	if len(body) == 0 {
		return nil, domain.NewSemanticError("No image output from AI.")
	}

	return &domain.InferenceResponse{
		Image:       body,
		ContentType: outputType(resp.Header.Get("Content-Type")),
	}, nil
}

// errorDetails extracts the "error" field of a JSON error body, falling back to the raw text
func errorDetails(body []byte) string {
	var parsed struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Error) > 0 {
		var message string
		if err := json.Unmarshal(parsed.Error, &message); err == nil && message != "" {
			return message
		}
		if string(parsed.Error) != "null" {
			return string(parsed.Error)
		}
	}
	return strings.TrimSpace(string(body))
}

// outputType strips media type parameters and defaults to image/png
func outputType(header string) string {
	if header == "" {
		return defaultOutputType
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType == "" {
		return defaultOutputType
	}
	return mediaType
}
