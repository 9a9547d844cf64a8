package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/artomat/artomat/internal/gallery"
	"github.com/artomat/artomat/internal/models"
	"github.com/artomat/artomat/internal/storage"
)

// Handler serves the read-only gallery over a local output directory.
type Handler struct {
	store     *storage.GalleryStore
	outputDir string
}

// New builds a handler by indexing the metadata sidecars in the output
// directory.
func New(outputDir string) (*Handler, error) {
	entries, err := gallery.LoadEntries(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to index gallery: %w", err)
	}

	store := storage.New()
	for _, entry := range entries {
		store.Set(entry)
	}
	slog.Info("Gallery indexed", "dir", outputDir, "entries", store.Len())

	return &Handler{
		store:     store,
		outputDir: outputDir,
	}, nil
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) getEntryOrError(w http.ResponseWriter, imageFile string) (models.GalleryEntry, bool) {
	entry, exists := h.store.Get(imageFile)
	if !exists {
		h.writeError(w, "Gallery entry not found", http.StatusNotFound)
		return models.GalleryEntry{}, false
	}
	return entry, true
}
