package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeRelay struct {
	uploadCalls   int
	generateCalls int

	uploadURL   string
	uploadErr   error
	output      []string
	generateErr error

	gotImageData string
	gotPrompt    string
	gotImageURL  string
}

func (f *fakeRelay) UploadImage(_ context.Context, imageData string) (string, error) {
	f.uploadCalls++
	f.gotImageData = imageData
	return f.uploadURL, f.uploadErr
}

func (f *fakeRelay) GenerateAura(_ context.Context, prompt, imageURL string) ([]string, error) {
	f.generateCalls++
	f.gotPrompt, f.gotImageURL = prompt, imageURL
	return f.output, f.generateErr
}

type recorder struct {
	views []ViewModel
}

func (r *recorder) Render(vm ViewModel) { r.views = append(r.views, vm) }

func (r *recorder) last() ViewModel { return r.views[len(r.views)-1] }

func (r *recorder) states() []State {
	out := make([]State, len(r.views))
	for i, vm := range r.views {
		out[i] = vm.State
	}
	return out
}

func photoOf(data []byte) *Photo {
	return &Photo{
		Name: "me.png",
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func validSubmission() Submission {
	return Submission{BirthDate: "2000-07-04", Gender: "female", Vibe: "celestial", Photo: photoOf(pngBytes)}
}

func newTestController(relay Relay) *Controller {
	c := NewController(relay, nil)
	c.now = func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	return c
}

func assertCleanedUp(t *testing.T, vm ViewModel) {
	t.Helper()
	assert.False(t, vm.Loading)
	assert.True(t, vm.TriggerEnabled)
	assert.Equal(t, TriggerLabel, vm.TriggerLabel)
	assert.Equal(t, StateIdle, vm.State)
}

func TestGenerate_Success(t *testing.T) {
	relay := &fakeRelay{uploadURL: "https://i.ibb.co/x.png", output: []string{"data:image/webp;base64,AAAA"}}
	r := &recorder{}

	result, err := newTestController(relay).Generate(context.Background(), validSubmission(), r)
	require.NoError(t, err)

	assert.Equal(t, domain.Cancer, result.Zodiac)
	assert.Equal(t, "data:image/webp;base64,AAAA", result.ImageDataURI)
	assert.Equal(t, "Behold, your majestic Cancer aura in a celestial style!", result.Description)

	assert.True(t, strings.HasPrefix(relay.gotImageData, "data:image/png;base64,"))
	assert.Equal(t, "https://i.ibb.co/x.png", relay.gotImageURL)
	assert.Equal(t, "portrait of a 26-year-old female, Cancer aura, cosmic stardust, swirling galaxy, nebulae colors, high detail, intricate, digital art", relay.gotPrompt)

	assert.Equal(t, []State{StateUploading, StateGenerating, StateSucceeded, StateIdle}, r.states())
	assert.Equal(t, StatusUploading, r.views[0].Status)
	assert.False(t, r.views[0].TriggerEnabled)
	assert.Equal(t, BusyTriggerLabel, r.views[0].TriggerLabel)
	assert.Equal(t, StatusGenerating, r.views[1].Status)

	final := r.last()
	assertCleanedUp(t, final)
	assert.True(t, final.ResultVisible)
	assert.Equal(t, "Cancer", final.Zodiac)
	assert.False(t, final.ErrorVisible)
}

func TestGenerate_ValidationMakesNoCalls(t *testing.T) {
	tests := []struct {
		name string
		sub  func(s *Submission)
		want string
	}{
		{"missing photo", func(s *Submission) { s.Photo = nil }, MsgMissingPhoto},
		{"missing birth date wins", func(s *Submission) { s.BirthDate = ""; s.Photo = nil }, MsgMissingBirthDate},
		{"malformed birth date", func(s *Submission) { s.BirthDate = "July 4th" }, MsgInvalidBirthDate},
		{"future birth date", func(s *Submission) { s.BirthDate = "2030-01-01" }, MsgInvalidBirthDate},
		{"unknown gender", func(s *Submission) { s.Gender = "robot" }, MsgInvalidGender},
		{"unknown vibe", func(s *Submission) { s.Vibe = "grunge" }, MsgInvalidVibe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &fakeRelay{}
			r := &recorder{}
			sub := validSubmission()
			tt.sub(&sub)

			result, err := newTestController(relay).Generate(context.Background(), sub, r)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.EqualError(t, err, tt.want)

			assert.Zero(t, relay.uploadCalls)
			assert.Zero(t, relay.generateCalls)

			require.Len(t, r.views, 1)
			assert.True(t, r.last().ErrorVisible)
			assert.Equal(t, tt.want, r.last().ErrorMessage)
			assertCleanedUp(t, r.last())
		})
	}
}

func TestGenerate_BornTodayEastOfUTC(t *testing.T) {
	relay := &fakeRelay{uploadURL: "https://i.ibb.co/x.png", output: []string{"data:image/png;base64,AAAA"}}
	c := NewController(relay, nil)
	c.now = func() time.Time {
		return time.Date(2026, time.October, 18, 5, 0, 0, 0, time.FixedZone("AEST", 10*60*60))
	}
	sub := validSubmission()
	sub.BirthDate = "2026-10-18"

	result, err := c.Generate(context.Background(), sub, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, domain.Libra, result.Zodiac)
	assert.Contains(t, relay.gotPrompt, "portrait of a 0-year-old female, Libra aura")
}

func TestGenerate_RelayFailuresAlwaysCleanUp(t *testing.T) {
	tests := []struct {
		name         string
		relay        *fakeRelay
		wantMessage  string
		wantGenerate int
	}{
		{
			name:         "upload fails",
			relay:        &fakeRelay{uploadErr: errors.New("Server-side image upload failed: Invalid API v1 key.")},
			wantMessage:  "Ouch! An error occurred: Server-side image upload failed: Invalid API v1 key.. Please try again.",
			wantGenerate: 0,
		},
		{
			name:         "generation fails",
			relay:        &fakeRelay{uploadURL: "u", generateErr: errors.New("AI generation failed: Model is loading")},
			wantMessage:  "Ouch! An error occurred: AI generation failed: Model is loading. Please try again.",
			wantGenerate: 1,
		},
		{
			name:         "empty output",
			relay:        &fakeRelay{uploadURL: "u", output: []string{}},
			wantMessage:  "Ouch! An error occurred: AI generation failed: No image output from AI.. Please try again.",
			wantGenerate: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}

			result, err := newTestController(tt.relay).Generate(context.Background(), validSubmission(), r)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantGenerate, tt.relay.generateCalls)

			final := r.last()
			assertCleanedUp(t, final)
			assert.False(t, final.ResultVisible)
			assert.Empty(t, final.ImageDataURI)
			assert.True(t, final.ErrorVisible)
			assert.Equal(t, tt.wantMessage, final.ErrorMessage)
			assert.Contains(t, r.states(), StateFailed)
		})
	}
}

func TestGenerate_UnreadablePhoto(t *testing.T) {
	relay := &fakeRelay{}
	r := &recorder{}
	sub := validSubmission()
	sub.Photo = &Photo{Name: "gone.png", Open: func() (io.ReadCloser, error) { return nil, errors.New("no such file") }}

	_, err := newTestController(relay).Generate(context.Background(), sub, r)
	require.Error(t, err)
	assert.Zero(t, relay.uploadCalls)
	assertCleanedUp(t, r.last())
}

func TestGenerate_NonImagePhoto(t *testing.T) {
	relay := &fakeRelay{}
	r := &recorder{}
	sub := validSubmission()
	sub.Photo = photoOf([]byte("just some text"))

	_, err := newTestController(relay).Generate(context.Background(), sub, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an image")
	assert.Zero(t, relay.uploadCalls)
}
