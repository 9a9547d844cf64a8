package gallery

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/artomat/artomat/internal/models"
)

const metadataSuffix = "_metadata.json"

// Writer persists generated images and their metadata sidecars to the
// output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteImage writes image bytes to the output directory under the given
// filename, creating the directory if needed. Empty image data is an error
// and nothing is written.
func (w *Writer) WriteImage(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to write empty image data for %s", filename)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path, nil
}

// WriteMetadata writes the record as a JSON sidecar named after the
// record's image file, e.g. 20240101120000_metadata.json.
func (w *Writer) WriteMetadata(record models.PromptRecord) (string, error) {
	if record.ImageFile == "" {
		return "", fmt.Errorf("record has no image file to describe")
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	stem := strings.TrimSuffix(record.ImageFile, filepath.Ext(record.ImageFile))
	path := filepath.Join(w.dir, stem+metadataSuffix)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	return path, nil
}

// LoadEntries scans the output directory for metadata sidecars and returns
// the gallery entries, newest first. A missing directory yields an empty
// gallery.
func LoadEntries(dir string) ([]models.GalleryEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+metadataSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	entries := make([]models.GalleryEntry, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable metadata file", "path", path, "err", err)
			continue
		}

		var record models.PromptRecord
		if err := json.Unmarshal(data, &record); err != nil {
			slog.Warn("Skipping malformed metadata file", "path", path, "err", err)
			continue
		}
		if record.ImageFile == "" {
			continue
		}

		entries = append(entries, models.GalleryEntry{
			ImageFile: record.ImageFile,
			ImageURL:  "/images/" + record.ImageFile,
			Record:    record,
		})
	}

	// Image files are named by timestamp, so name order is time order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ImageFile > entries[j].ImageFile
	})

	return entries, nil
}
