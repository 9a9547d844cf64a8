package handlers

import (
	"net/http"
	"sort"
	"strings"
)

func (h *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		entries := h.store.GetAll()
		// Image files are timestamp-named; newest first.
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].ImageFile > entries[j].ImageFile
		})
		h.writeJSON(w, entries)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleEntryDetail(w http.ResponseWriter, r *http.Request) {
	imageFile := strings.TrimPrefix(r.URL.Path, "/api/entries/")

	entry, ok := h.getEntryOrError(w, imageFile)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, entry)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
