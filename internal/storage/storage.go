package storage

import (
	"sync"

	"github.com/artomat/artomat/internal/models"
)

// GalleryStore is an in-memory index of gallery entries keyed by image
// filename. It backs the read-only gallery server.
type GalleryStore struct {
	entries map[string]models.GalleryEntry
	mu      sync.RWMutex
}

func New() *GalleryStore {
	return &GalleryStore{
		entries: make(map[string]models.GalleryEntry),
	}
}

func (s *GalleryStore) Get(imageFile string) (models.GalleryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.entries[imageFile]
	return entry, exists
}

func (s *GalleryStore) Set(entry models.GalleryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ImageFile] = entry
}

func (s *GalleryStore) GetAll() []models.GalleryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.GalleryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, entry)
	}
	return result
}

func (s *GalleryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
