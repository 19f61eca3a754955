package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Gender is the subject description used in the generation prompt
type Gender string

const (
	GenderFemale    Gender = "female"
	GenderMale      Gender = "male"
	GenderNonBinary Gender = "non-binary"
)

// Genders lists every accepted gender in display order
var Genders = []Gender{GenderFemale, GenderMale, GenderNonBinary}

// ParseGender validates a client-supplied gender string
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Genders {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// VibeStyle is the aesthetic tag selecting the prompt's style descriptor
type VibeStyle string

const (
	VibeEthereal       VibeStyle = "ethereal"
	VibeCyberpunk      VibeStyle = "cyberpunk"
	VibeMystic         VibeStyle = "mystic"
	VibeCelestial      VibeStyle = "celestial"
	VibeCrystalline    VibeStyle = "crystalline"
	VibeBioluminescent VibeStyle = "bioluminescent"
	VibeVaporwave      VibeStyle = "vaporwave"
	VibePainterly      VibeStyle = "painterly"
)

// VibeStyles lists the eight known vibe tags in display order
var VibeStyles = []VibeStyle{
	VibeEthereal,
	VibeCyberpunk,
	VibeMystic,
	VibeCelestial,
	VibeCrystalline,
	VibeBioluminescent,
	VibeVaporwave,
	VibePainterly,
}

// ParseVibeStyle validates a client-supplied vibe tag
func ParseVibeStyle(s string) (VibeStyle, error) {
	v := VibeStyle(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range VibeStyles {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vibe style %q", s)
}

// ZodiacSign is one of the twelve western zodiac labels
type ZodiacSign string

const (
	Aquarius    ZodiacSign = "Aquarius"
	Pisces      ZodiacSign = "Pisces"
	Aries       ZodiacSign = "Aries"
	Taurus      ZodiacSign = "Taurus"
	Gemini      ZodiacSign = "Gemini"
	Cancer      ZodiacSign = "Cancer"
	Leo         ZodiacSign = "Leo"
	Virgo       ZodiacSign = "Virgo"
	Libra       ZodiacSign = "Libra"
	Scorpio     ZodiacSign = "Scorpio"
	Sagittarius ZodiacSign = "Sagittarius"
	Capricorn   ZodiacSign = "Capricorn"

	// UnknownZodiac is returned for month/day pairs outside every range.
	UnknownZodiac ZodiacSign = "Unknown Zodiac"
)

// GenerationRequest is a single user submission
type GenerationRequest struct {
	BirthDate time.Time
	Gender    Gender
	Vibe      VibeStyle
	Photo     []byte
	PhotoType string
}

// UploadedImageRef points at the copy held by the image host
type UploadedImageRef struct {
	URL string
}

// GeneratedAuraResult is what the client renders after a successful generation
type GeneratedAuraResult struct {
	ImageDataURI string
	Zodiac       ZodiacSign
	Description  string
}

// ImageHost uploads base64 image payloads and returns a public URL
type ImageHost interface {
	Upload(ctx context.Context, base64Image string) (*UploadedImageRef, error)
}

// ImageFetcher downloads the bytes behind a URL
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// InferenceRequest carries the prompt and init image for an image-to-image call
type InferenceRequest struct {
	Prompt            string
	ImageDataURI      string
	Strength          float64
	NumInferenceSteps int
}

// InferenceResponse is the raw generated image
type InferenceResponse struct {
	Image       []byte
	ContentType string
}

// InferenceClient submits prompts to the image-generation API
type InferenceClient interface {
	Generate(ctx context.Context, req InferenceRequest) (*InferenceResponse, error)
}
