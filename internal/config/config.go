package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = 3000
	defaultImgBBBaseURL      = "https://api.imgbb.com"
	defaultHuggingFaceURL    = "https://api-inference.huggingface.co"
	defaultModelID           = "stabilityai/stable-diffusion-xl-base-1.0"
	defaultStrength          = 0.3
	defaultInferenceSteps    = 50
	defaultHTTPTimeout       = 120 * time.Second
	defaultMaxBodyBytes      = 50 << 20
	defaultStatsSchedule     = "0 */5 * * * *"
	credentialLoadedLabel    = "Loaded"
	credentialNotLoadedLabel = "Not Loaded"
)

// InferenceConfig holds the fixed parameters sent with every generation request
type InferenceConfig struct {
	BaseURL           string
	ModelID           string
	Strength          float64
	NumInferenceSteps int
}

// Config holds all configuration for the application
type Config struct {
	ImgBBAPIKey       string
	HuggingFaceAPIKey string
	Port              int
	ImgBBBaseURL      string
	Inference         InferenceConfig
	HTTPTimeout       time.Duration
	MaxBodyBytes      int64
	StatsSchedule     string
}

// Load loads the configuration from an optional .env file and the environment.
// Missing API keys are not an error; see CredentialStatus.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		ImgBBAPIKey:       os.Getenv("IMGBB_API_KEY"),
		HuggingFaceAPIKey: os.Getenv("HUGGINGFACE_API_KEY"),
		ImgBBBaseURL:      getString("IMGBB_BASE_URL", defaultImgBBBaseURL),
		Inference: InferenceConfig{
			BaseURL: getString("HUGGINGFACE_BASE_URL", defaultHuggingFaceURL),
			ModelID: getString("HUGGINGFACE_MODEL_ID", defaultModelID),
		},
		StatsSchedule: defaultStatsSchedule,
	}

	if schedule, ok := os.LookupEnv("STATS_SCHEDULE"); ok {
		config.StatsSchedule = schedule
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		config.Port = port
	} else {
		config.Port = defaultPort
	}

	if strength, err := strconv.ParseFloat(os.Getenv("AURA_STRENGTH"), 64); err == nil {
		config.Inference.Strength = strength
	} else {
		config.Inference.Strength = defaultStrength
	}

	if steps, err := strconv.Atoi(os.Getenv("AURA_INFERENCE_STEPS")); err == nil {
		config.Inference.NumInferenceSteps = steps
	} else {
		config.Inference.NumInferenceSteps = defaultInferenceSteps
	}

	if timeout, err := strconv.Atoi(os.Getenv("HTTP_TIMEOUT_SECONDS")); err == nil {
		config.HTTPTimeout = time.Duration(timeout) * time.Second
	} else {
		config.HTTPTimeout = defaultHTTPTimeout
	}

	if maxBody, err := strconv.ParseInt(os.Getenv("MAX_BODY_BYTES"), 10, 64); err == nil {
		config.MaxBodyBytes = maxBody
	} else {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}

	// Validate ranges
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", config.Port)
	}
	if config.Inference.Strength < 0 || config.Inference.Strength > 1 {
		return nil, fmt.Errorf("AURA_STRENGTH must be between 0 and 1, got %v", config.Inference.Strength)
	}
	if config.Inference.NumInferenceSteps <= 0 {
		return nil, fmt.Errorf("AURA_INFERENCE_STEPS must be positive, got %d", config.Inference.NumInferenceSteps)
	}
	if config.HTTPTimeout < 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must not be negative")
	}
	if config.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", config.MaxBodyBytes)
	}

	return config, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CredentialStatus reports whether each upstream API key was provided
func (c *Config) CredentialStatus() map[string]string {
	return map[string]string{
		"IMGBB_API_KEY":       loadedLabel(c.ImgBBAPIKey),
		"HUGGINGFACE_API_KEY": loadedLabel(c.HuggingFaceAPIKey),
	}
}

func loadedLabel(v string) string {
	if v == "" {
		return credentialNotLoadedLabel
	}
	return credentialLoadedLabel
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
