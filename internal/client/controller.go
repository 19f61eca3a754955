// Package client drives the upload-then-generate flow from the user's side.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/prompt"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/zodiac"
)

// Validation messages shown to the user
const (
	MsgMissingBirthDate = "Please enter your birth date."
	MsgInvalidBirthDate = "Please enter a valid birth date."
	MsgMissingPhoto     = "Please upload your photo first!"
	MsgInvalidGender    = "Please choose a valid gender."
	MsgInvalidVibe      = "Please choose a valid vibe style."
)

// Relay is the backend the controller talks to
type Relay interface {
	UploadImage(ctx context.Context, imageData string) (string, error)
	GenerateAura(ctx context.Context, prompt, imageURL string) ([]string, error)
}

// Photo is an image the user picked. Open is called once, after validation.
type Photo struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Submission is the raw form input
type Submission struct {
	BirthDate string
	Gender    string
	Vibe      string
	Photo     *Photo
}

// Controller orchestrates one generation per call. It keeps no UI state between calls.
type Controller struct {
	relay  Relay
	logger *zap.Logger
	now    func() time.Time
}

// NewController creates a controller that talks to relay
func NewController(relay Relay, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{relay: relay, logger: logger, now: time.Now}
}

// Generate validates the submission, uploads the photo, requests the aura and
// renders every transition. The final view always has loading hidden and the
// trigger re-enabled. The returned result is nil on failure.
func (c *Controller) Generate(ctx context.Context, sub Submission, r Renderer) (*domain.GeneratedAuraResult, error) {
	vm := IdleView()
	vm.State = StateValidating

	req, err := c.validate(sub)
	if err != nil {
		vm.State = StateIdle
		vm.ErrorVisible = true
		vm.ErrorMessage = err.Error()
		r.Render(vm)
		return nil, err
	}

	composed := prompt.Compose(req.BirthDate, req.Gender, req.Vibe, c.now())
	c.logger.Debug("composed prompt",
		zap.String("zodiac", string(composed.Zodiac)),
		zap.Int("age", composed.Age),
		zap.String("prompt", composed.Prompt),
	)

	vm.State = StateUploading
	vm.Loading = true
	vm.Status = StatusUploading
	vm.TriggerEnabled = false
	vm.TriggerLabel = BusyTriggerLabel
	r.Render(vm)

	defer func() {
		r.Render(vm)

		vm.State = StateIdle
		vm.Loading = false
		vm.Status = ""
		vm.TriggerEnabled = true
		vm.TriggerLabel = TriggerLabel
		r.Render(vm)
	}()

	result, err := c.run(ctx, sub.Photo, composed, &vm, r)
	if err != nil {
		vm.State = StateFailed
		vm.ResultVisible = false
		vm.ImageDataURI, vm.Zodiac, vm.Description = "", "", ""
		vm.ErrorVisible = true
		vm.ErrorMessage = fmt.Sprintf("Ouch! An error occurred: %s. Please try again.", err.Error())
		c.logger.Warn("aura generation failed", zap.Error(err))
		return nil, err
	}

	vm.State = StateSucceeded
	vm.ResultVisible = true
	vm.ImageDataURI = result.ImageDataURI
	vm.Zodiac = string(result.Zodiac)
	vm.Description = result.Description
	vm.ErrorVisible = false
	vm.ErrorMessage = ""
	return result, nil
}

func (c *Controller) run(ctx context.Context, photo *Photo, composed prompt.Composition, vm *ViewModel, r Renderer) (*domain.GeneratedAuraResult, error) {
	imageData, err := readPhoto(photo)
	if err != nil {
		return nil, err
	}

	imageURL, err := c.relay.UploadImage(ctx, imageData)
	if err != nil {
		return nil, err
	}
	c.logger.Info("image uploaded", zap.String("image_url", imageURL))

	vm.State = StateGenerating
	vm.Status = StatusGenerating
	r.Render(*vm)

	output, err := c.relay.GenerateAura(ctx, composed.Prompt, imageURL)
	if err != nil {
		return nil, err
	}
	if len(output) == 0 || output[0] == "" {
		return nil, errors.New("AI generation failed: No image output from AI.")
	}

	return &domain.GeneratedAuraResult{
		ImageDataURI: output[0],
		Zodiac:       composed.Zodiac,
		Description:  composed.Description,
	}, nil
}

func (c *Controller) validate(sub Submission) (*domain.GenerationRequest, error) {
	if strings.TrimSpace(sub.BirthDate) == "" {
		return nil, errors.New(MsgMissingBirthDate)
	}
	if sub.Photo == nil || sub.Photo.Open == nil {
		return nil, errors.New(MsgMissingPhoto)
	}

	birth, err := zodiac.ParseBirthDate(sub.BirthDate)
	if err != nil || zodiac.IsFuture(birth, c.now()) {
		return nil, errors.New(MsgInvalidBirthDate)
	}
	gender, err := domain.ParseGender(sub.Gender)
	if err != nil {
		return nil, errors.New(MsgInvalidGender)
	}
	vibe, err := domain.ParseVibeStyle(sub.Vibe)
	if err != nil {
		return nil, errors.New(MsgInvalidVibe)
	}

	return &domain.GenerationRequest{BirthDate: birth, Gender: gender, Vibe: vibe}, nil
}

// readPhoto reads the whole photo and encodes it as a data URI
func readPhoto(photo *Photo) (string, error) {
	rc, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("could not read photo: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("could not read photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("photo %q is empty", photo.Name)
	}

	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("photo %q is not an image (%s)", photo.Name, mediaType)
	}
	return domain.EncodeDataURI(mediaType, data), nil
}
