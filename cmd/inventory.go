package cmd

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"modforge/internal/config"
	"modforge/internal/deploy"
	"modforge/internal/models"
)

// loadInventory builds the live mod inventory by scanning the configured
// deployment directories. The installed filename doubles as the mod ID.
func loadInventory() []models.ModRecord {
	var inventory []models.ModRecord

	for location, dir := range config.GetLocationRoots() {
		if dir == "" {
			continue
		}
		mods, err := deploy.ListInstalled(dir)
		if err != nil {
			log.Warn("failed to scan deployment directory", "dir", dir, "err", err)
			continue
		}
		for _, m := range mods {
			inventory = append(inventory, models.ModRecord{
				ID:       m.FileName,
				Name:     m.ProjectName,
				Version:  m.Version,
				Type:     string(m.ArtifactType),
				Format:   strings.TrimPrefix(filepath.Ext(m.FileName), "."),
				Location: location,
				Path:     m.FilePath,
			})
		}
	}

	return inventory
}
