// Package build turns a source project into a versioned, registered
// artifact: compiled plugins via the external toolchain, datapacks by
// zipping the source tree. Both kinds share build numbering and store
// registration.
package build

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"modforge/internal/models"
	"modforge/internal/naming"
	"modforge/internal/store"
)

// Options configures a Builder.
type Options struct {
	PluginsRoot   string   // builds root for compiled packages
	DatapacksRoot string   // builds root for archive packages
	Retention     int      // artifacts kept per project
	LogLimit      int      // captured output ceiling in bytes
	Command       string   // external build command
	Args          []string // arguments to the build command
	OutputDir     string   // tool output dir, relative to the project
	ToolchainHome string   // optional toolchain installation to prefer
}

// Result is the outcome of one build invocation. A failed build is an
// expected outcome the caller branches on, not an error: Success is false
// and Log carries the captured tool output.
type Result struct {
	Success    bool
	Log        string
	Truncated  bool
	DurationMs int64
	Artifact   *models.Artifact
}

// Builder produces artifacts and registers them in the per-project store.
// Builds for the same project directory are serialized so concurrent
// invocations cannot interleave sidecar writes.
type Builder struct {
	opts Options

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Builder.
func New(opts Options) *Builder {
	if opts.Retention <= 0 {
		opts.Retention = store.DefaultRetention
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join("build", "libs")
	}
	return &Builder{
		opts:  opts,
		locks: make(map[string]*sync.Mutex),
	}
}

func (b *Builder) projectLock(projectDir string) *sync.Mutex {
	key := filepath.Clean(projectDir)
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[key]
	if !ok {
		l = &sync.Mutex{}
		b.locks[key] = l
	}
	return l
}

// BuildPlugin compiles a plugin project with the external toolchain and
// registers the resulting jar. A missing project directory is an error;
// a failing or output-less toolchain run is a non-error failure Result.
func (b *Builder) BuildPlugin(projectDir string) (Result, error) {
	lock := b.projectLock(projectDir)
	lock.Lock()
	defer lock.Unlock()

	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("project directory does not exist: %s", projectDir)
	}

	name, version := readProjectMeta(projectDir)

	log.Debug("starting plugin build", "project", name, "version", version)
	run := runCommand(b.opts.Command, b.opts.Args, projectDir, b.toolchainEnv(), b.opts.LogLimit)

	if run.ExitCode != 0 {
		return Result{
			Log:        run.Output,
			Truncated:  run.Truncated,
			DurationMs: run.DurationMs,
		}, nil
	}

	// A zero exit code does not guarantee usable output; check explicitly.
	outputDir := filepath.Join(projectDir, b.opts.OutputDir)
	selected, diag := selectOutputJar(outputDir)
	if selected == "" {
		return Result{
			Log:        run.Output + "\n" + diag,
			Truncated:  run.Truncated,
			DurationMs: run.DurationMs,
		}, nil
	}

	buildDir := filepath.Join(b.opts.PluginsRoot, name)
	number := nextBuildNumber(buildDir, version)
	destPath := filepath.Join(buildDir, naming.Encode(name, version, number, naming.ExtPlugin))

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create build directory: %w", err)
	}
	if err := copyFile(selected, destPath); err != nil {
		return Result{}, fmt.Errorf("failed to copy build output: %w", err)
	}

	artifact, err := b.register(buildDir, models.Artifact{
		ProjectName:  name,
		Version:      version,
		OutputPath:   destPath,
		DurationMs:   run.DurationMs,
		ArtifactType: models.TypeCompiledPackage,
		BuildLog:     run.Output,
		LogTruncated: run.Truncated,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success:    true,
		Log:        run.Output,
		Truncated:  run.Truncated,
		DurationMs: run.DurationMs,
		Artifact:   artifact,
	}, nil
}

// BuildDatapack zips a loose asset directory into an archive package and
// registers it. There is no subprocess here; the only failure mode is an
// I/O error, which propagates.
func (b *Builder) BuildDatapack(projectDir string) (Result, error) {
	lock := b.projectLock(projectDir)
	lock.Lock()
	defer lock.Unlock()

	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("project directory does not exist: %s", projectDir)
	}

	name, version := readProjectMeta(projectDir)
	start := time.Now()

	var buf bytes.Buffer
	if err := zipDirectory(&buf, projectDir); err != nil {
		return Result{}, fmt.Errorf("failed to package %s: %w", name, err)
	}

	buildDir := filepath.Join(b.opts.DatapacksRoot, name)
	number := nextBuildNumber(buildDir, version)
	destPath := filepath.Join(buildDir, naming.Encode(name, version, number, naming.ExtDatapack))

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create build directory: %w", err)
	}
	if err := os.WriteFile(destPath, buf.Bytes(), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write archive: %w", err)
	}

	durationMs := time.Since(start).Milliseconds()

	artifact, err := b.register(buildDir, models.Artifact{
		ProjectName:  name,
		Version:      version,
		OutputPath:   destPath,
		DurationMs:   durationMs,
		ArtifactType: models.TypeArchivePackage,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success:    true,
		DurationMs: durationMs,
		Artifact:   artifact,
	}, nil
}

// register stamps identity, timestamp and size onto an artifact and appends
// it to the project's history.
func (b *Builder) register(buildDir string, artifact models.Artifact) (*models.Artifact, error) {
	info, err := os.Stat(artifact.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}

	artifact.ID = uuid.NewString()
	artifact.BuiltAt = time.Now()
	artifact.FileSizeBytes = info.Size()

	if err := store.Append(buildDir, artifact, b.opts.Retention); err != nil {
		return nil, fmt.Errorf("failed to record artifact: %w", err)
	}
	return &artifact, nil
}

// toolchainEnv returns the subprocess environment. When a configured
// toolchain home exists on disk, its bin directory is prepended to PATH and
// GRADLE_HOME is exported; otherwise the ambient environment is inherited.
func (b *Builder) toolchainEnv() []string {
	home := b.opts.ToolchainHome
	if home == "" {
		return nil
	}
	if info, err := os.Stat(home); err != nil || !info.IsDir() {
		return nil
	}

	bin := filepath.Join(home, "bin")
	env := os.Environ()
	resolved := make([]string, 0, len(env)+2)
	pathSeen := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			kv = "PATH=" + bin + string(os.PathListSeparator) + strings.TrimPrefix(kv, "PATH=")
			pathSeen = true
		}
		resolved = append(resolved, kv)
	}
	if !pathSeen {
		resolved = append(resolved, "PATH="+bin)
	}
	return append(resolved, "GRADLE_HOME="+home)
}

// nextBuildNumber counts prior builds of the same version and adds one.
// Numbers are a per-version counter, not a global one: two different
// versions both start at build 1.
func nextBuildNumber(buildDir, version string) int {
	count := 0
	for _, a := range store.Load(buildDir).Artifacts {
		if a.Version == version {
			count++
		}
	}
	return count + 1
}

// selectOutputJar picks the most relevant jar from the tool's output
// directory: sources variants are filtered out and the lexicographically
// last candidate wins. Returns the path, or "" with a diagnostic when the
// directory is missing or holds no usable output.
func selectOutputJar(outputDir string) (path, diag string) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Sprintf("build output directory not found: %s", outputDir)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".jar") {
			continue
		}
		if strings.Contains(name, "-sources") {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Sprintf("no build output found in %s", outputDir)
	}

	sort.Strings(candidates)
	return filepath.Join(outputDir, candidates[len(candidates)-1]), ""
}

// zipDirectory writes every file under root into w as a deflate-compressed
// zip, preserving directory structure with forward-slash paths.
func zipDirectory(w io.Writer, root string) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		entry, err := zw.Create(filepath.ToSlash(relPath))
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
	})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
