// Package profile is the minimal persistence surface for imported
// profiles: a single JSON document under the data directory.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"modforge/internal/models"
)

const fileName = "profiles.json"

// Store reads and writes the profiles document.
type Store struct {
	path string
}

// NewStore creates a Store rooted at the given data directory.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, fileName)}
}

// Load returns all stored profiles. A missing or corrupt document yields an
// empty list; profile storage follows the same tolerance as build history.
func (s *Store) Load() []models.Profile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var profiles []models.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		log.Warn("discarding corrupt profiles document", "path", s.path, "err", err)
		return nil
	}
	return profiles
}

// Save writes all profiles atomically.
func (s *Store) Save(profiles []models.Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace profiles: %w", err)
	}
	return nil
}

// Add appends a profile and saves.
func (s *Store) Add(p models.Profile) error {
	return s.Save(append(s.Load(), p))
}

// Find returns the profile with the given ID.
func (s *Store) Find(id string) (models.Profile, bool) {
	for _, p := range s.Load() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Profile{}, false
}
