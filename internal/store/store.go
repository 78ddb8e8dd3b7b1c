// Package store persists per-project build history as a JSON sidecar file
// colocated with the project's build output directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"modforge/internal/models"
)

// SidecarName is the history file kept in every project build directory.
const SidecarName = "builds.json"

// DefaultRetention is the number of artifacts kept per project before the
// oldest are pruned.
const DefaultRetention = 10

// Located pairs an artifact with the project build directory that owns it.
type Located struct {
	Artifact   models.Artifact
	ProjectDir string
}

// Load reads the sidecar for a project build directory. A missing, corrupt,
// or unparsable sidecar yields an empty history seeded with the directory's
// base name; history corruption is self-healing by discarding, never fatal.
func Load(projectDir string) models.ProjectBuildHistory {
	empty := models.ProjectBuildHistory{ProjectName: filepath.Base(projectDir)}

	data, err := os.ReadFile(filepath.Join(projectDir, SidecarName))
	if err != nil {
		return empty
	}

	var history models.ProjectBuildHistory
	if err := json.Unmarshal(data, &history); err != nil {
		log.Warn("discarding corrupt build history", "dir", projectDir, "err", err)
		return empty
	}

	if history.ProjectName == "" {
		history.ProjectName = empty.ProjectName
	}
	return history
}

// Save writes the sidecar atomically (write to a temp file, then rename) so
// a crash mid-write cannot corrupt existing history.
func Save(projectDir string, history models.ProjectBuildHistory) error {
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal build history: %w", err)
	}

	tmpPath := filepath.Join(projectDir, SidecarName+".tmp")
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write build history: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(projectDir, SidecarName)); err != nil {
		return fmt.Errorf("failed to replace build history: %w", err)
	}
	return nil
}

// Append adds an artifact to a project's history, evicting the oldest
// entries beyond retentionLimit. Backing files of evicted entries are
// deleted best-effort; a failed delete leaves a stale file but never fails
// the append.
func Append(projectDir string, artifact models.Artifact, retentionLimit int) error {
	if retentionLimit <= 0 {
		retentionLimit = DefaultRetention
	}

	history := Load(projectDir)
	history.Artifacts = append(history.Artifacts, artifact)

	for len(history.Artifacts) > retentionLimit {
		evicted := history.Artifacts[0]
		history.Artifacts = history.Artifacts[1:]
		if err := os.Remove(evicted.OutputPath); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove evicted artifact", "path", evicted.OutputPath, "err", err)
		}
	}

	return Save(projectDir, history)
}

// Remove drops the artifact with the given ID from a project's history.
// Removing an unknown ID is a no-op.
func Remove(projectDir, artifactID string) error {
	history := Load(projectDir)

	kept := history.Artifacts[:0]
	for _, a := range history.Artifacts {
		if a.ID != artifactID {
			kept = append(kept, a)
		}
	}
	history.Artifacts = kept

	return Save(projectDir, history)
}

// ListAll loads every project history under the given builds roots and
// returns artifacts whose backing file still exists, newest first. Stale
// entries are filtered at read time; the sidecars are never modified.
func ListAll(roots []string) []Located {
	var all []Located

	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			// A builds root that does not exist yet simply has no artifacts.
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			projectDir := filepath.Join(root, entry.Name())
			history := Load(projectDir)
			for _, a := range history.Artifacts {
				if _, err := os.Stat(a.OutputPath); err != nil {
					continue
				}
				all = append(all, Located{Artifact: a, ProjectDir: projectDir})
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Artifact.BuiltAt.After(all[j].Artifact.BuiltAt)
	})

	return all
}

// FindByID scans all project histories under the given roots for an
// artifact. Returns the artifact, its project build directory, and whether
// it was found.
func FindByID(roots []string, artifactID string) (models.Artifact, string, bool) {
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			projectDir := filepath.Join(root, entry.Name())
			for _, a := range Load(projectDir).Artifacts {
				if a.ID == artifactID {
					return a, projectDir, true
				}
			}
		}
	}
	return models.Artifact{}, "", false
}
