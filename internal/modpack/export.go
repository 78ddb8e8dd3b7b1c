// Package modpack builds and reads self-describing zip archives for
// sharing mod configurations: lightweight profile "modpacks" and
// self-contained per-world mod bundles.
package modpack

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"modforge/internal/models"
)

const (
	// ModpackManifestName is the fixed manifest entry of a profile export.
	ModpackManifestName = "modpack.json"
	// WorldModsManifestName is the fixed manifest entry of a world export.
	WorldModsManifestName = "worldmods.json"
	// payloadPrefix namespaces mod payload entries in a world export.
	payloadPrefix = "mods"
)

// ExportProfile writes a modpack archive for a profile. The archive holds
// only the manifest; enabled mod IDs are re-resolved against the live mod
// inventory at import time.
func ExportProfile(profile models.Profile, destPath string) error {
	manifest := models.ModpackManifest{
		Name:          profile.Name,
		ProfileID:     profile.ID,
		EnabledModIDs: profile.EnabledModIDs,
		ExportedAt:    time.Now(),
		ModCount:      len(profile.EnabledModIDs),
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := writeManifest(zw, ModpackManifestName, manifest); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ExportWorldMods writes a self-contained bundle of a world's enabled mods:
// a manifest plus the actual payload files under mods/{location}/{modName}.
// Exporting a world with zero enabled mods is an error and writes no file.
func ExportWorldMods(worldID string, enabledModIDs []string, inventory []models.ModRecord, destPath string) error {
	byID := make(map[string]models.ModRecord, len(inventory))
	for _, mod := range inventory {
		byID[mod.ID] = mod
	}

	var mods []models.ModRecord
	for _, id := range enabledModIDs {
		if mod, ok := byID[id]; ok {
			mods = append(mods, mod)
		}
	}

	if len(mods) == 0 {
		return fmt.Errorf("no mods are enabled for world %s", worldID)
	}

	manifest := models.WorldModsManifest{
		WorldID:    worldID,
		ExportedAt: time.Now(),
	}
	for _, mod := range mods {
		manifest.Mods = append(manifest.Mods, models.WorldModEntry{
			ID:       mod.ID,
			Name:     mod.Name,
			Version:  mod.Version,
			Type:     mod.Type,
			Format:   mod.Format,
			Location: mod.Location,
		})
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := writeManifest(zw, WorldModsManifestName, manifest); err != nil {
		zw.Close()
		return err
	}

	for _, mod := range mods {
		if err := writePayload(zw, mod); err != nil {
			zw.Close()
			return fmt.Errorf("failed to bundle %s: %w", mod.Name, err)
		}
	}

	return zw.Close()
}

func writeManifest(zw *zip.Writer, name string, manifest any) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create manifest entry: %w", err)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// writePayload adds a mod's bytes under mods/{location}/{modName}: a single
// entry for file mods, a recursive subtree for directory mods. The mod ID
// doubles as the on-disk name, so it keys the namespace. Entry paths always
// use forward slashes.
func writePayload(zw *zip.Writer, mod models.ModRecord) error {
	prefix := payloadPrefix + "/" + mod.Location + "/" + mod.ID

	info, err := os.Stat(mod.Path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return writeFileEntry(zw, prefix, mod.Path)
	}

	return filepath.WalkDir(mod.Path, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(mod.Path, path)
		if err != nil {
			return err
		}
		return writeFileEntry(zw, prefix+"/"+filepath.ToSlash(relPath), path)
	})
}

func writeFileEntry(zw *zip.Writer, name, path string) error {
	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(entry, file)
	return err
}
