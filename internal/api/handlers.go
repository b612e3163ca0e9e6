package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/services"
	"github.com/tahcohcat/ttsstudio/internal/studio"
)

// HistoryLister is the read side of the generation history.
type HistoryLister interface {
	Recent(limit int) ([]models.Generation, error)
	ByFileName(name string) (*models.Generation, error)
	Count() (int, error)
}

type Handler struct {
	studio  *studio.Studio
	history HistoryLister
	timeout time.Duration
	logger  *logger.Log
}

func NewHandler(s *studio.Studio, history HistoryLister, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		studio:  s,
		history: history,
		timeout: timeout,
		logger:  logger.Named("api"),
	}
}

type GenerateRequest struct {
	Text string `json:"text"`
	models.Preferences
}

type GenerateResponse struct {
	*studio.Result
	VoiceDescription string `json:"voice_description"`
	SizeHuman        string `json:"size_human"`
	AudioURL         string `json:"audio_url"`
	DownloadURL      string `json:"download_url"`
}

type ErrorResponse struct {
	Error      string   `json:"error"`
	Kind       string   `json:"kind"`
	Field      string   `json:"field,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Tips       []string `json:"tips,omitempty"`
}

// Error kinds
const (
	KindEmptyText  = "empty_text"
	KindValidation = "validation"
	KindGeneration = "generation"
	KindBadRequest = "bad_request"
	KindInternal   = "internal"
)

// AudioURL is where a stored artifact is played from.
func AudioURL(name string) string {
	return "/audio/" + url.PathEscape(name)
}

// DownloadURL serves the artifact as an attachment.
func DownloadURL(name string) string {
	return AudioURL(name) + "?download=1"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps studio errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	var genErr *studio.GenerationError

	switch {
	case errors.Is(err, studio.ErrEmptyText):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindEmptyText})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindValidation, Field: verr.Field, Suggestion: verr.Suggestion})
	case errors.As(err, &genErr):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error(), Kind: KindGeneration, Tips: studio.TroubleshootingTips})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: KindInternal})
	}
}

func decode(r *http.Request) (GenerateRequest, error) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	req.Preferences = req.Preferences.WithDefaults()
	return req, nil
}

// GET /api/v1/options - Option lists and defaults for the form
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Catalogue())
}

// POST /api/v1/preview - Transformed text and instructions without synthesis
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Kind: KindBadRequest})
		return
	}
	writeJSON(w, http.StatusOK, h.studio.Preview(req.Text, req.Preferences))
}

// POST /api/v1/generate - Synthesize and save an MP3
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Kind: KindBadRequest})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.studio.Generate(ctx, req.Text, req.Preferences)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Result:           res,
		VoiceDescription: models.VoiceDescription(res.Preferences.Voice),
		SizeHuman:        humanize.Bytes(uint64(res.Size)),
		AudioURL:         AudioURL(res.FileName),
		DownloadURL:      DownloadURL(res.FileName),
	})
}

// GET /api/v1/history?limit=N - Recently generated files
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"generations": []models.Generation{}})
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 500 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid limit %q", s), Kind: KindBadRequest})
			return
		}
		limit = n
	}

	gens, err := h.history.Recent(limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list history")
		writeError(w, err)
		return
	}
	if gens == nil {
		gens = []models.Generation{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"generations": gens})
}

// GET /api/v1/health - Provider in use and number of recorded generations
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":      "ok",
		"synthesizer": h.studio.Synthesizer().Name(),
	}
	if h.history != nil {
		n, err := h.history.Count()
		if err != nil {
			h.logger.WithError(err).Error("failed to count generations")
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "history unavailable", Kind: KindInternal})
			return
		}
		resp["generations"] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/options", h.Options).Methods("GET")
	r.HandleFunc("/preview", h.Preview).Methods("POST")
	r.HandleFunc("/generate", h.Generate).Methods("POST")
	r.HandleFunc("/history", h.History).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
}

var _ HistoryLister = (*services.HistoryService)(nil)
