// Package deploy copies artifacts into a live target directory, keeping at
// most one build per project live at a time.
package deploy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"modforge/internal/models"
	"modforge/internal/naming"
	"modforge/internal/store"
)

// Result describes one deployment.
type Result struct {
	DestinationPath string
	ReplacedPath    string // empty when no prior build was replaced
}

// Deploy resolves an artifact by ID and copies it into targetDir under its
// original filename. An existing file in the target decoding to the same
// project is reported as ReplacedPath and removed only after the new build
// is in place; at most one replacement occurs. The copy is staged to a temp
// file and renamed in, so a crash mid-deploy never leaves a half-written
// artifact or a project with no live build. An unknown artifact or an
// unconfigured target is a user-correctable configuration error, never
// retried.
func Deploy(buildsRoots []string, artifactID, targetDir string) (Result, error) {
	if targetDir == "" {
		return Result{}, fmt.Errorf("deployment directory is not configured")
	}

	artifact, _, ok := store.FindByID(buildsRoots, artifactID)
	if !ok {
		return Result{}, fmt.Errorf("artifact not found: %s", artifactID)
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create deployment directory: %w", err)
	}

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read deployment directory: %w", err)
	}

	var prior string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		decoded := naming.Decode(entry.Name())
		if decoded == nil || decoded.ProjectName != artifact.ProjectName {
			continue
		}
		prior = filepath.Join(targetDir, entry.Name())
		// Only one build per project may be live at a time.
		break
	}

	destPath := filepath.Join(targetDir, filepath.Base(artifact.OutputPath))
	if err := copyFile(artifact.OutputPath, destPath); err != nil {
		return Result{}, fmt.Errorf("failed to deploy artifact: %w", err)
	}

	// Redeploying the same filename is already handled by the rename above.
	if prior != "" && prior != destPath {
		if err := os.Remove(prior); err != nil {
			return Result{}, fmt.Errorf("failed to remove prior build %s: %w", prior, err)
		}
	}

	return Result{DestinationPath: destPath, ReplacedPath: prior}, nil
}

// ListInstalled scans a deployment directory and decodes every recognized
// filename into an installed-mod record. Files that fail to decode are
// skipped; the directory may contain unrelated files.
func ListInstalled(targetDir string) ([]models.InstalledMod, error) {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read deployment directory: %w", err)
	}

	var installed []models.InstalledMod
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		decoded := naming.Decode(entry.Name())
		if decoded == nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		installed = append(installed, models.InstalledMod{
			FileName:      entry.Name(),
			FilePath:      filepath.Join(targetDir, entry.Name()),
			ProjectName:   decoded.ProjectName,
			Version:       decoded.Version,
			BuildNumber:   decoded.BuildNumber,
			ArtifactType:  decoded.ArtifactType,
			InstalledAt:   info.ModTime(),
			FileSizeBytes: info.Size(),
		})
	}

	sort.Slice(installed, func(i, j int) bool {
		return installed[i].ProjectName < installed[j].ProjectName
	})

	return installed, nil
}

// copyFile stages the copy in a temp file next to dst and renames it into
// place, the same atomic-replace scheme the build history sidecar uses.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
