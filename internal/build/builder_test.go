package build

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"modforge/internal/store"
	"modforge/internal/testutil"
)

func newTestBuilder(ws *testutil.TempWorkspace, command string, args ...string) *Builder {
	return New(Options{
		PluginsRoot:   ws.Dir("builds", "plugins"),
		DatapacksRoot: ws.Dir("builds", "datapacks"),
		Retention:     10,
		LogLimit:      65536,
		Command:       command,
		Args:          args,
	})
}

func TestReadProjectMetaDefaults(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.Dir("Bare")
	name, version := readProjectMeta(dir)
	if name != "Bare" {
		t.Errorf("expected directory base name Bare, got %s", name)
	}
	if version != "1.0.0" {
		t.Errorf("expected default version 1.0.0, got %s", version)
	}
}

func TestReadProjectMetaManifest(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "2.3.4")
	name, version := readProjectMeta(dir)
	if name != "Alpha" || version != "2.3.4" {
		t.Errorf("expected Alpha 2.3.4, got %s %s", name, version)
	}
}

func TestReadProjectMetaPropertiesOverride(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	ws.CreateFile(filepath.Join("Alpha", "gradle.properties"), "group=example\nversion=9.9.9\n")

	_, version := readProjectMeta(dir)
	if version != "9.9.9" {
		t.Errorf("expected properties override 9.9.9, got %s", version)
	}
}

func TestReadProjectMetaToleratesCorruptManifest(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.Dir("Alpha")
	ws.CreateFile(filepath.Join("Alpha", "project.json"), "{broken")

	name, version := readProjectMeta(dir)
	if name != "Alpha" || version != "1.0.0" {
		t.Errorf("expected tolerant defaults, got %s %s", name, version)
	}
}

func TestRunCommandCapturesExitAndOutput(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	res := runCommand("sh", []string{"-c", "echo broken build; exit 3"}, ws.Path, nil, 65536)
	if res.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Output, "broken build") {
		t.Errorf("expected captured output, got %q", res.Output)
	}
}

func TestRunCommandTruncatesOutput(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	res := runCommand("sh", []string{"-c", "printf 'aaaaaaaaaaaaaaaaaaaa'"}, ws.Path, nil, 10)
	if !res.Truncated {
		t.Error("expected output to be truncated")
	}
	if len(res.Output) != 10 {
		t.Errorf("expected 10 bytes of output, got %d", len(res.Output))
	}
}

func TestRunCommandTruncatesOnRuneBoundary(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	// Five two-byte runes; a limit of 5 falls mid-rune and must back off.
	res := runCommand("sh", []string{"-c", "printf 'ααααα'"}, ws.Path, nil, 5)
	if !res.Truncated {
		t.Error("expected output to be truncated")
	}
	if !utf8.ValidString(res.Output) {
		t.Errorf("truncated output is not valid UTF-8: %q", res.Output)
	}
	if len(res.Output) != 4 {
		t.Errorf("expected 4 bytes after boundary backoff, got %d", len(res.Output))
	}
}

func TestToolchainEnvWithoutAmbientPath(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	home := ws.Dir("gradle")
	b := New(Options{ToolchainHome: home})

	// Registers restoration of the original value, then drop the variable
	// entirely to simulate a bare environment.
	t.Setenv("PATH", os.Getenv("PATH"))
	os.Unsetenv("PATH")

	want := "PATH=" + filepath.Join(home, "bin")
	found := false
	for _, kv := range b.toolchainEnv() {
		if kv == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s entry even without an ambient PATH", want)
	}
}

func TestBuildPluginMissingProject(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	b := newTestBuilder(ws, "true")
	if _, err := b.BuildPlugin(filepath.Join(ws.Path, "nope")); err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestBuildPluginToolFailure(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	b := newTestBuilder(ws, "sh", "-c", "echo compilation failed >&2; exit 1")

	res, err := b.BuildPlugin(dir)
	if err != nil {
		t.Fatalf("tool failure must not be an error: %v", err)
	}
	if res.Success {
		t.Error("expected failure result")
	}
	if !strings.Contains(res.Log, "compilation failed") {
		t.Errorf("expected log to carry tool output, got %q", res.Log)
	}
	if res.Artifact != nil {
		t.Error("no artifact may be registered on failure")
	}
}

func TestBuildPluginMissingOutput(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	// The tool exits zero but produces nothing usable.
	dir := ws.CreateProject("Alpha", "1.0.0")
	b := newTestBuilder(ws, "true")

	res, err := b.BuildPlugin(dir)
	if err != nil {
		t.Fatalf("missing output must not be an error: %v", err)
	}
	if res.Success {
		t.Error("expected failure result when no output exists")
	}
	if !strings.Contains(res.Log, "build output directory not found") {
		t.Errorf("expected diagnostic in log, got %q", res.Log)
	}
}

func TestBuildPluginSuccess(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	// Fake toolchain emitting a library jar plus a sources variant that the
	// selection must skip.
	script := "mkdir -p build/libs && echo bin > build/libs/Alpha-1.0.0.jar && echo src > build/libs/Alpha-1.0.0-sources.jar"
	b := newTestBuilder(ws, "sh", "-c", script)

	res, err := b.BuildPlugin(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, log: %s", res.Log)
	}

	a := res.Artifact
	if a == nil {
		t.Fatal("expected registered artifact")
	}
	if filepath.Base(a.OutputPath) != "Alpha-1.0.0-build1.jar" {
		t.Errorf("expected Alpha-1.0.0-build1.jar, got %s", filepath.Base(a.OutputPath))
	}
	if !ws.FileExists(filepath.Join("builds", "plugins", "Alpha", "Alpha-1.0.0-build1.jar")) {
		t.Error("expected artifact file in builds root")
	}
	if a.FileSizeBytes == 0 {
		t.Error("expected non-zero artifact size")
	}

	history := store.Load(filepath.Join(ws.Path, "builds", "plugins", "Alpha"))
	if len(history.Artifacts) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(history.Artifacts))
	}
}

func TestBuildPluginRecordsTruncatedLog(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	script := "printf 'aaaaaaaaaaaaaaaaaaaa'; mkdir -p build/libs && echo bin > build/libs/Alpha-1.0.0.jar"
	b := New(Options{
		PluginsRoot:   ws.Dir("builds", "plugins"),
		DatapacksRoot: ws.Dir("builds", "datapacks"),
		Retention:     10,
		LogLimit:      10,
		Command:       "sh",
		Args:          []string{"-c", script},
	})

	res, err := b.BuildPlugin(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, log: %s", res.Log)
	}
	if !res.Truncated {
		t.Error("expected truncated result")
	}
	if res.Artifact == nil || !res.Artifact.LogTruncated {
		t.Error("expected truncation flag on the registered artifact")
	}
	if len(res.Artifact.BuildLog) != 10 {
		t.Errorf("expected 10 bytes of recorded log, got %d", len(res.Artifact.BuildLog))
	}
}

func TestBuildDatapackRegistersArchive(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	ws.CreateFile(filepath.Join("Alpha", "data", "functions", "hello.mcfunction"), "say hello")

	b := newTestBuilder(ws, "true")
	res, err := b.BuildDatapack(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !res.Success || res.Artifact == nil {
		t.Fatal("expected successful datapack build")
	}

	if filepath.Base(res.Artifact.OutputPath) != "Alpha-1.0.0-build1.zip" {
		t.Errorf("expected Alpha-1.0.0-build1.zip, got %s", filepath.Base(res.Artifact.OutputPath))
	}

	// The archive preserves the source tree with forward-slash paths.
	zr, err := zip.OpenReader(res.Artifact.OutputPath)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		if f.Name == "data/functions/hello.mcfunction" {
			found = true
		}
	}
	if !found {
		t.Error("expected nested file entry in archive")
	}
}

func TestBuildNumbersArePerVersion(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	dir := ws.CreateProject("Alpha", "1.0.0")
	b := newTestBuilder(ws, "true")

	first, err := b.BuildDatapack(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	second, err := b.BuildDatapack(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// Bump the version; the counter restarts at 1.
	ws.CreateFile(filepath.Join("Alpha", "project.json"), `{"Name": "Alpha", "Version": "2.0.0"}`)
	third, err := b.BuildDatapack(dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	names := []string{
		filepath.Base(first.Artifact.OutputPath),
		filepath.Base(second.Artifact.OutputPath),
		filepath.Base(third.Artifact.OutputPath),
	}
	want := []string{"Alpha-1.0.0-build1.zip", "Alpha-1.0.0-build2.zip", "Alpha-2.0.0-build1.zip"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("build %d: expected %s, got %s", i+1, want[i], names[i])
		}
	}
}
