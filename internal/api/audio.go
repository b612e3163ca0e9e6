package api

import (
	"errors"
	"mime"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/storage"
)

// AudioHandler streams stored artifacts for the player and the download
// button.
type AudioHandler struct {
	store  *storage.FileStore
	logger *logger.Log
}

func NewAudioHandler(store *storage.FileStore) *AudioHandler {
	return &AudioHandler{store: store, logger: logger.Named("audio")}
}

// GET /audio/{name}[?download=1]
func (a *AudioHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	f, err := a.store.Open(name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			http.Error(w, "Invalid file name", http.StatusBadRequest)
		case errors.Is(err, os.ErrNotExist):
			http.Error(w, "Audio file not found", http.StatusNotFound)
		default:
			a.logger.WithError(err).Error("failed to open audio file")
			http.Error(w, "Failed to open audio file", http.StatusInternalServerError)
		}
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "Failed to read audio file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func RegisterAudioRoutes(r *mux.Router, a *AudioHandler) {
	r.HandleFunc("/audio/{name}", a.Serve).Methods("GET", "HEAD")
}
