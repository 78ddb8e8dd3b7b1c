package models

import "time"

// ArtifactType distinguishes how an artifact was produced
type ArtifactType string

const (
	// TypeCompiledPackage is a plugin compiled by the external toolchain
	TypeCompiledPackage ArtifactType = "compiled-package"
	// TypeArchivePackage is a datapack zipped from a loose asset directory
	TypeArchivePackage ArtifactType = "archive-package"
)

// Artifact represents one produced, deployable build output.
// Artifacts are immutable once created.
type Artifact struct {
	ID            string       `json:"id"`
	ProjectName   string       `json:"projectName"`
	Version       string       `json:"version"`
	OutputPath    string       `json:"outputPath"`
	BuiltAt       time.Time    `json:"builtAt"`
	DurationMs    int64        `json:"durationMs"`
	FileSizeBytes int64        `json:"fileSizeBytes"`
	ArtifactType  ArtifactType `json:"artifactType"`
	BuildLog      string       `json:"buildLog,omitempty"`
	LogTruncated  bool         `json:"logTruncated,omitempty"`
}

// ProjectBuildHistory is the sidecar document tracking a project's artifacts.
// Artifacts are kept in insertion order, which is build order.
type ProjectBuildHistory struct {
	ProjectName string     `json:"projectName"`
	Artifacts   []Artifact `json:"artifacts"`
}
