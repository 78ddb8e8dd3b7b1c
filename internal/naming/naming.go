package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"modforge/internal/models"
)

// Artifact filename convention: {Project}-{Version}[-build{N}].{ext}
const (
	ExtPlugin   = "jar"
	ExtDatapack = "zip"
)

// The project-name group is greedy, so a version-like substring inside a
// project name can mis-parse. That ambiguity is part of the naming
// convention and is preserved here.
var filenamePattern = regexp.MustCompile(`^(.+)-(\d+\.\d+\.\d+)(?:-build(\d+))?\.((?i:jar|zip))$`)

// Decoded is the result of parsing an artifact filename.
type Decoded struct {
	ProjectName  string
	Version      string
	BuildNumber  int // 0 when the filename carries no -buildN suffix
	ArtifactType models.ArtifactType
	Extension    string
}

// Encode produces the canonical artifact filename. A buildNumber of zero
// or less omits the build suffix.
func Encode(projectName, version string, buildNumber int, ext string) string {
	if buildNumber <= 0 {
		return fmt.Sprintf("%s-%s.%s", projectName, version, ext)
	}
	return fmt.Sprintf("%s-%s-build%d.%s", projectName, version, buildNumber, ext)
}

// Decode parses an artifact filename. It returns nil when the name does
// not match the convention; it never fails otherwise.
func Decode(filename string) *Decoded {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return nil
	}

	d := &Decoded{
		ProjectName: m[1],
		Version:     m[2],
		Extension:   strings.ToLower(m[4]),
	}

	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return nil
		}
		d.BuildNumber = n
	}

	switch d.Extension {
	case ExtPlugin:
		d.ArtifactType = models.TypeCompiledPackage
	case ExtDatapack:
		d.ArtifactType = models.TypeArchivePackage
	}

	return d
}

// ExtensionFor returns the filename extension for an artifact type.
func ExtensionFor(t models.ArtifactType) string {
	if t == models.TypeArchivePackage {
		return ExtDatapack
	}
	return ExtPlugin
}
