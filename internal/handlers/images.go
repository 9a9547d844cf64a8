package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
)

// HandleImage serves generated PNGs from the output directory.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/images/")

	// Prevent directory traversal attacks
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	if _, ok := h.store.Get(filename); !ok {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.outputDir, filename))
}
