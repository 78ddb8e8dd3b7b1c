package models

import "time"

// InstalledMod is a read-only projection of a deployed artifact,
// reconstructed by decoding filenames in a deployment directory.
// It is computed on demand and never persisted.
type InstalledMod struct {
	FileName      string       `json:"fileName"`
	FilePath      string       `json:"filePath"`
	ProjectName   string       `json:"projectName"`
	Version       string       `json:"version"`
	BuildNumber   int          `json:"buildNumber,omitempty"` // 0 when the filename carries no build suffix
	ArtifactType  ArtifactType `json:"artifactType"`
	InstalledAt   time.Time    `json:"installedAt"`
	FileSizeBytes int64        `json:"fileSizeBytes"`
}
