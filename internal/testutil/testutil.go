package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempWorkspace is a temporary directory tree for pipeline tests.
type TempWorkspace struct {
	Path string
	T    *testing.T
}

// NewTempWorkspace creates a new temporary workspace directory.
func NewTempWorkspace(t *testing.T) *TempWorkspace {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "modforge-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &TempWorkspace{
		Path: tmpDir,
		T:    t,
	}
}

// Cleanup removes the workspace.
func (w *TempWorkspace) Cleanup() {
	w.T.Helper()
	if err := os.RemoveAll(w.Path); err != nil {
		w.T.Errorf("failed to cleanup workspace: %v", err)
	}
}

// Dir creates (if needed) and returns a directory inside the workspace.
func (w *TempWorkspace) Dir(parts ...string) string {
	w.T.Helper()
	path := filepath.Join(append([]string{w.Path}, parts...)...)
	if err := os.MkdirAll(path, 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	return path
}

// CreateFile creates a file (and parent directories) inside the workspace
// and returns its absolute path.
func (w *TempWorkspace) CreateFile(name, content string) string {
	w.T.Helper()
	path := filepath.Join(w.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
	return path
}

// CreateProject creates a project source directory with a project.json
// manifest and returns its absolute path.
func (w *TempWorkspace) CreateProject(name, version string) string {
	w.T.Helper()
	manifest := `{"Name": "` + name + `", "Version": "` + version + `"}`
	w.CreateFile(filepath.Join(name, "project.json"), manifest)
	return filepath.Join(w.Path, name)
}

// FileExists reports whether a path relative to the workspace exists.
func (w *TempWorkspace) FileExists(name string) bool {
	w.T.Helper()
	_, err := os.Stat(filepath.Join(w.Path, name))
	return err == nil
}

// ReadFile reads a file relative to the workspace.
func (w *TempWorkspace) ReadFile(name string) string {
	w.T.Helper()
	data, err := os.ReadFile(filepath.Join(w.Path, name))
	if err != nil {
		w.T.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}
