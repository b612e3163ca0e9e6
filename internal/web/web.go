// Package web renders the single-page studio form.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tahcohcat/ttsstudio/internal/api"
	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/services"
	"github.com/tahcohcat/ttsstudio/internal/studio"
)

var funcs = template.FuncMap{
	"title":     func(s string) string { return cases.Title(language.English).String(s) },
	"bytes":     func(n int64) string { return humanize.Bytes(uint64(n)) },
	"ago":       humanize.Time,
	"audioURL":  api.AudioURL,
	"download":  api.DownloadURL,
	"voiceDesc": models.VoiceDescription,
	"speed":     func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) },
	"minutes":   func(f float64) string { return fmt.Sprintf("%.1f min", f) },
}

// Templates holds the parsed pages.
type Templates struct {
	Index *template.Template
	Login *template.Template
}

// LoadTemplates parses index.gohtml and login.gohtml from dir.
func LoadTemplates(dir string) (*Templates, error) {
	index, err := template.New("index.gohtml").Funcs(funcs).ParseFiles(filepath.Join(dir, "index.gohtml"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	login, err := template.New("login.gohtml").Funcs(funcs).ParseFiles(filepath.Join(dir, "login.gohtml"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}
	return &Templates{Index: index, Login: login}, nil
}

// PageData is everything the form page renders.
type PageData struct {
	Options     models.Options
	Prefs       models.Preferences
	Text        string
	Stats       *models.TextStats
	Result      *studio.Result
	Warning     string
	Error       string
	Tips        []string
	History     []models.Generation
	Synthesizer string
}

type Handler struct {
	studio    *studio.Studio
	history   api.HistoryLister
	templates *Templates
	timeout   time.Duration
	logger    *logger.Log
}

func NewHandler(s *studio.Studio, history api.HistoryLister, templates *Templates, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		studio:    s,
		history:   history,
		templates: templates,
		timeout:   timeout,
		logger:    logger.Named("web"),
	}
}

func (h *Handler) page(prefs models.Preferences, text string) *PageData {
	data := &PageData{
		Options:     models.Catalogue(),
		Prefs:       prefs,
		Text:        text,
		Synthesizer: h.studio.Synthesizer().Name(),
	}
	if text != "" {
		stats := models.StatsFor(text)
		data.Stats = &stats
	}
	if h.history != nil {
		gens, err := h.history.Recent(10)
		if err != nil {
			h.logger.WithError(err).Warn("failed to load history")
		}
		data.History = gens
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, status int, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Index.Execute(w, data); err != nil {
		h.logger.WithError(err).Error("failed to render page")
	}
}

// GET /[?reuse=<file name>] - The form, optionally prefilled with the
// selections of an earlier generation
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("reuse")
	if name == "" || h.history == nil {
		h.render(w, http.StatusOK, h.page(models.DefaultPreferences(), ""))
		return
	}

	g, err := h.history.ByFileName(name)
	switch {
	case err == nil:
		h.render(w, http.StatusOK, h.page(g.Preferences().WithDefaults(), ""))
	case errors.Is(err, services.ErrNotFound):
		data := h.page(models.DefaultPreferences(), "")
		data.Warning = fmt.Sprintf("No saved settings for %s", name)
		h.render(w, http.StatusNotFound, data)
	default:
		h.logger.WithError(err).Error("failed to load generation")
		data := h.page(models.DefaultPreferences(), "")
		data.Error = "Could not load the saved settings"
		h.render(w, http.StatusInternalServerError, data)
	}
}

// parseForm reads the selections from a form post. Missing fields fall back
// to defaults; a malformed speed is reported as a validation error.
func parseForm(r *http.Request) (models.Preferences, string, error) {
	if err := r.ParseForm(); err != nil {
		return models.Preferences{}, "", err
	}
	prefs := models.Preferences{
		Voice:       r.FormValue("voice"),
		Style:       r.FormValue("style"),
		Tone:        r.FormValue("tone"),
		Punctuation: r.FormValue("punctuation"),
		Delivery:    r.FormValue("delivery"),
		Emphasis:    r.FormValue("emphasis"),
	}
	if s := r.FormValue("speed"); s != "" {
		speed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return prefs.WithDefaults(), r.FormValue("text"), &models.ValidationError{Field: "speed", Value: s}
		}
		prefs.Speed = speed
	}
	return prefs.WithDefaults(), r.FormValue("text"), nil
}

// POST /generate - Form submission; re-renders the page with the outcome
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	prefs, text, err := parseForm(r)
	if err != nil {
		data := h.page(prefs, text)
		data.Error = err.Error()
		h.render(w, http.StatusBadRequest, data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.studio.Generate(ctx, text, prefs)
	data := h.page(prefs, text)

	var verr *models.ValidationError
	var genErr *studio.GenerationError
	switch {
	case err == nil:
		data.Result = res
		h.render(w, http.StatusOK, data)
	case errors.Is(err, studio.ErrEmptyText):
		data.Warning = "Please enter text before generating audio"
		h.render(w, http.StatusBadRequest, data)
	case errors.As(err, &verr):
		data.Error = err.Error()
		h.render(w, http.StatusBadRequest, data)
	case errors.As(err, &genErr):
		data.Error = err.Error()
		data.Tips = studio.TroubleshootingTips
		h.render(w, http.StatusBadGateway, data)
	default:
		data.Error = err.Error()
		h.render(w, http.StatusInternalServerError, data)
	}
}

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/generate", h.Generate).Methods("POST")
}
