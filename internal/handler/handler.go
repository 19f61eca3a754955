package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/prompt"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/zodiac"
)

// Relay is the backend side of the two-step aura pipeline
type Relay interface {
	UploadImage(ctx context.Context, imageData string) (string, error)
	GenerateAura(ctx context.Context, prompt, imageURL string) ([]string, error)
}

// Options configures a Handler
type Options struct {
	Templates    fs.FS
	Static       fs.FS
	MaxBodyBytes int64
	Logger       *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler serves the relay API and the entry page
type Handler struct {
	relay        Relay
	tmpl         *template.Template
	static       fs.FS
	maxBodyBytes int64
	logger       *zap.Logger
	now          func() time.Time
}

// New parses the entry page template and returns a handler
func New(relay Relay, opts Options) (*Handler, error) {
	tmpl, err := template.ParseFS(opts.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := &Handler{
		relay:        relay,
		tmpl:         tmpl,
		static:       opts.Static,
		maxBodyBytes: opts.MaxBodyBytes,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h, nil
}

// Routes returns the full middleware-wrapped router
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload-image-to-imgbb", h.UploadImage)
	mux.HandleFunc("POST /api/generate-aura", h.GenerateAura)
	mux.HandleFunc("POST /api/prompt", h.ComposePrompt)
	mux.HandleFunc("GET /healthz", h.Health)
	if h.static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(h.static)))
	}
	mux.HandleFunc("GET /", h.Home)

	return Chain(mux, h.RequestLogger, h.Recovery, CORS)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type uploadRequest struct {
	ImageData string `json:"imageData"`
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage handles POST /api/upload-image-to-imgbb
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !h.decode(w, r, &req) {
		return
	}

	url, err := h.relay.UploadImage(r.Context(), req.ImageData)
	if err != nil {
		title := "An internal server error occurred during image upload."
		if domain.KindOf(err) == domain.KindSemantic {
			title = "Failed to upload image to ImgBB"
		}
		h.relayError(w, r, title, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{ImageURL: url})
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
}

type generateResponse struct {
	Output []string `json:"output"`
}

// GenerateAura handles POST /api/generate-aura
func (h *Handler) GenerateAura(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.relay.GenerateAura(r.Context(), req.Prompt, req.ImageURL)
	if err != nil {
		title := "Failed to generate aura"
		if domain.KindOf(err) == domain.KindImageFetch {
			title = "Failed to process uploaded image"
		}
		h.relayError(w, r, title, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Output: output})
}

type promptRequest struct {
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
	Vibe      string `json:"vibe"`
}

// ComposePrompt handles POST /api/prompt. Enumerations are validated here because
// the relay endpoints accept whatever prompt text the client sends.
func (h *Handler) ComposePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if !h.decode(w, r, &req) {
		return
	}

	birth, err := zodiac.ParseBirthDate(req.BirthDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid birth date", Details: err.Error()})
		return
	}
	if zodiac.IsFuture(birth, h.now()) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid birth date", Details: "birth date is in the future"})
		return
	}
	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid gender", Details: err.Error()})
		return
	}
	vibe, err := domain.ParseVibeStyle(req.Vibe)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid vibe style", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, prompt.Compose(birth, gender, vibe, h.now()))
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home renders the entry page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Genders": domain.Genders,
		"Vibes":   domain.VibeStyles,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("error executing template", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// decode reads a size-limited JSON body, writing a 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Error: "Invalid request body", Details: err.Error()})
		return false
	}
	return true
}

// relayError maps a relay failure to the uniform {error, details} body
func (h *Handler) relayError(w http.ResponseWriter, r *http.Request, title string, err error) {
	details := err.Error()
	var relayErr *domain.RelayError
	if errors.As(err, &relayErr) {
		details = relayErr.Error()
	}

	kind := domain.KindOf(err)
	if kind == domain.KindValidation {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: relayErr.Message, Details: details})
		return
	}

	h.logger.Error("relay failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", kind.String()),
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: title, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
