package models

import "time"

// ModpackManifest is the manifest embedded in a profile export archive.
// The archive carries no mod payload; enabled mod IDs are re-resolved
// against the live mod inventory at import time.
type ModpackManifest struct {
	Name          string    `json:"name"`
	ProfileID     string    `json:"profileId"`
	EnabledModIDs []string  `json:"enabledModIds"`
	ExportedAt    time.Time `json:"exportedAt"`
	ModCount      int       `json:"modCount"`
}

// WorldModsManifest is the manifest embedded in a world-mods export archive.
type WorldModsManifest struct {
	WorldID    string          `json:"worldId"`
	ExportedAt time.Time       `json:"exportedAt"`
	Mods       []WorldModEntry `json:"mods"`
}

// WorldModEntry describes one mod bundled in a world-mods archive.
type WorldModEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	Type     string `json:"type"`
	Format   string `json:"format"`
	Location string `json:"location"`
}
