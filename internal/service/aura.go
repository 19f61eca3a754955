package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/config"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/infrastructure/huggingface"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/infrastructure/imgbb"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/infrastructure/remoteimage"
)

const fallbackInitImageType = "image/jpeg"

// AuraService relays photos to the image host and prompts to the inference API
type AuraService struct {
	host      domain.ImageHost
	fetcher   domain.ImageFetcher
	inference domain.InferenceClient
	params    config.InferenceConfig
	stats     *Stats
	logger    *zap.Logger
}

// NewAuraService wires the service to the given upstream clients
func NewAuraService(host domain.ImageHost, fetcher domain.ImageFetcher, inference domain.InferenceClient, params config.InferenceConfig, logger *zap.Logger) *AuraService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuraService{
		host:      host,
		fetcher:   fetcher,
		inference: inference,
		params:    params,
		stats:     &Stats{},
		logger:    logger,
	}
}

// NewAuraServiceFromConfig builds the service with the production ImgBB and Hugging Face clients
func NewAuraServiceFromConfig(cfg *config.Config, logger *zap.Logger) *AuraService {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	return NewAuraService(
		imgbb.NewClient(httpClient, cfg.ImgBBBaseURL, cfg.ImgBBAPIKey),
		remoteimage.NewFetcher(httpClient, cfg.MaxBodyBytes),
		huggingface.NewClient(httpClient, cfg.Inference.BaseURL, cfg.Inference.ModelID, cfg.HuggingFaceAPIKey),
		cfg.Inference,
		logger,
	)
}

// Stats returns the relay outcome counters
func (s *AuraService) Stats() *Stats {
	return s.stats
}

// UploadImage forwards a data URI (or bare base64) image to the host and returns its public URL
func (s *AuraService) UploadImage(ctx context.Context, imageData string) (string, error) {
	if strings.TrimSpace(imageData) == "" {
		return "", domain.NewValidationError("No image data provided.")
	}

	payload := domain.StripDataURIPrefix(imageData)
	s.logger.Debug("uploading image", zap.Int("base64_bytes", len(payload)))

	ref, err := s.host.Upload(ctx, payload)
	if err != nil {
		s.stats.recordUpload(false)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.stats.recordUpload(true)
	s.logger.Info("image uploaded", zap.String("image_url", ref.URL))
	return ref.URL, nil
}

// GenerateAura downloads imageURL, submits it with the prompt and returns the result as a one-element list of data URIs
func (s *AuraService) GenerateAura(ctx context.Context, prompt, imageURL string) ([]string, error) {
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(imageURL) == "" {
		return nil, domain.NewValidationError("Missing prompt or image URL")
	}

	data, contentType, err := s.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		s.stats.recordGeneration(false)
		return nil, domain.NewImageFetchError("Failed to process uploaded image", err)
	}

	resp, err := s.inference.Generate(ctx, domain.InferenceRequest{
		Prompt:            prompt,
		ImageDataURI:      domain.EncodeDataURI(initImageType(contentType, data), data),
		Strength:          s.params.Strength,
		NumInferenceSteps: s.params.NumInferenceSteps,
	})
	if err != nil {
		s.stats.recordGeneration(false)
		return nil, fmt.Errorf("failed to generate aura: %w", err)
	}

	s.stats.recordGeneration(true)
	s.logger.Info("aura generated",
		zap.String("content_type", resp.ContentType),
		zap.Int("bytes", len(resp.Image)),
	)
	return []string{domain.EncodeDataURI(resp.ContentType, resp.Image)}, nil
}

// initImageType picks the media type declared for the init image
func initImageType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return fallbackInitImageType
}
