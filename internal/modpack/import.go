package modpack

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"modforge/internal/models"
)

// ErrInvalidArchive marks an archive missing its manifest entry. This is a
// contract violation, unlike stale mod references, which are tolerated.
var ErrInvalidArchive = errors.New("invalid archive")

// ImportStats summarizes a world-mods import.
type ImportStats struct {
	Imported int
	Skipped  int
}

// ImportProfile reads a modpack archive and builds a new profile from it.
// Mod IDs not present in the current inventory are silently dropped; stale
// references across machines are expected. Returns the profile and how many
// IDs were dropped.
func ImportProfile(archivePath string, inventory []models.ModRecord) (models.Profile, int, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return models.Profile{}, 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	var manifest models.ModpackManifest
	if err := readManifest(&zr.Reader, ModpackManifestName, &manifest); err != nil {
		return models.Profile{}, 0, err
	}

	known := make(map[string]bool, len(inventory))
	for _, mod := range inventory {
		known[mod.ID] = true
	}

	var enabled []string
	dropped := 0
	for _, id := range manifest.EnabledModIDs {
		if known[id] {
			enabled = append(enabled, id)
		} else {
			dropped++
		}
	}

	profile := models.Profile{
		ID:            uuid.NewString(),
		Name:          manifest.Name,
		EnabledModIDs: enabled,
		CreatedAt:     time.Now(),
	}
	return profile, dropped, nil
}

// ImportWorldMods extracts a world-mods bundle. Each mod's location maps to
// a deployment root; unrecognized locations and IDs that are not plain
// names are skipped. A mod whose name already exists at its destination is
// skipped and counted, leaving the existing bytes untouched.
func ImportWorldMods(archivePath string, locationRoots map[string]string) (ImportStats, error) {
	var stats ImportStats

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return stats, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	var manifest models.WorldModsManifest
	if err := readManifest(&zr.Reader, WorldModsManifestName, &manifest); err != nil {
		return stats, err
	}

	for _, mod := range manifest.Mods {
		root, ok := locationRoots[mod.Location]
		if !ok || root == "" {
			log.Warn("skipping mod with unknown location", "mod", mod.Name, "location", mod.Location)
			stats.Skipped++
			continue
		}

		destPath := filepath.Join(root, mod.ID)
		if !safeModID(mod.ID) || filepath.Dir(destPath) != filepath.Clean(root) {
			log.Warn("skipping mod with unsafe id", "mod", mod.Name, "id", mod.ID)
			stats.Skipped++
			continue
		}
		if _, err := os.Stat(destPath); err == nil {
			// Conflict avoidance, not a merge: never overwrite.
			stats.Skipped++
			continue
		}

		prefix := payloadPrefix + "/" + mod.Location + "/" + mod.ID
		if err := extractPayload(&zr.Reader, prefix, destPath); err != nil {
			return stats, fmt.Errorf("failed to extract %s: %w", mod.Name, err)
		}
		stats.Imported++
	}

	return stats, nil
}

// safeModID reports whether a manifest-supplied mod ID is a plain file or
// directory name. IDs carrying path separators or parent references must
// never be joined into a destination path, or a crafted archive could
// write outside the deployment root.
func safeModID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// readManifest locates and decodes the fixed manifest entry. A missing
// entry is an ErrInvalidArchive.
func readManifest(zr *zip.Reader, name string, manifest any) error {
	for _, file := range zr.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}
		defer rc.Close()
		if err := json.NewDecoder(rc).Decode(manifest); err != nil {
			return fmt.Errorf("failed to parse manifest: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: missing %s entry", ErrInvalidArchive, name)
}

// extractPayload writes every archive entry under prefix to destPath,
// creating parent directories as needed. A single entry equal to the prefix
// is a file mod; entries below it form a directory mod.
func extractPayload(zr *zip.Reader, prefix, destPath string) error {
	for _, file := range zr.File {
		var target string
		switch {
		case file.Name == prefix:
			target = destPath
		case strings.HasPrefix(file.Name, prefix+"/"):
			rel := strings.TrimPrefix(file.Name, prefix+"/")
			if rel == "" || strings.Contains(rel, "..") {
				continue
			}
			target = filepath.Join(destPath, filepath.FromSlash(rel))
		default:
			continue
		}

		if strings.HasSuffix(file.Name, "/") {
			continue
		}

		if err := extractFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
