package build

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/magiconair/properties"
)

const (
	manifestName   = "project.json"
	propertiesName = "gradle.properties"
	defaultVersion = "1.0.0"
)

// readProjectMeta resolves the project name and version from the project's
// manifest, with a gradle.properties version override. Missing or malformed
// metadata never fails a build; it falls back to the directory base name
// and a default version so one bad file cannot block the pipeline.
func readProjectMeta(projectDir string) (name, version string) {
	name = filepath.Base(projectDir)
	version = defaultVersion

	if data, err := os.ReadFile(filepath.Join(projectDir, manifestName)); err == nil {
		var manifest struct {
			Name    string `json:"Name"`
			Version string `json:"Version"`
		}
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Warn("ignoring unparsable project manifest", "dir", projectDir, "err", err)
		} else {
			if manifest.Name != "" {
				name = manifest.Name
			}
			if manifest.Version != "" {
				version = manifest.Version
			}
		}
	}

	// A version line in gradle.properties wins over the manifest.
	if props, err := properties.LoadFile(filepath.Join(projectDir, propertiesName), properties.UTF8); err == nil {
		if v, ok := props.Get("version"); ok && v != "" {
			version = v
		}
	}

	return name, version
}
