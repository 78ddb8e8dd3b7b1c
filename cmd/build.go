package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"modforge/internal/build"
	"modforge/internal/config"
)

var buildKind string

var buildCmd = &cobra.Command{
	Use:   "build <project-dir>",
	Short: "Build a project into a versioned artifact",
	Long: `Build a source project and register the result in its build history.

Kinds:
  plugin (default)  - compile with the external toolchain, producing a jar
  datapack          - zip the project directory into an archive package

Build numbers count per version: building 1.0.0 twice then 2.0.0 once
yields build1, build2, build1.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildKind, "kind", "plugin", "Project kind: plugin|datapack")
}

func runBuild(cmd *cobra.Command, args []string) error {
	projectDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	builder := build.New(build.Options{
		PluginsRoot:   config.GetPluginsBuildRoot(),
		DatapacksRoot: config.GetDatapacksBuildRoot(),
		Retention:     config.GetRetention(),
		LogLimit:      config.GetLogLimit(),
		Command:       config.GetBuildCommand(),
		Args:          config.GetBuildArgs(),
		OutputDir:     config.GetBuildOutputDir(),
		ToolchainHome: config.GetToolchainHome(),
	})

	var result build.Result
	switch buildKind {
	case "plugin":
		result, err = builder.BuildPlugin(projectDir)
	case "datapack":
		result, err = builder.BuildDatapack(projectDir)
	default:
		return fmt.Errorf("invalid kind: %s (must be: plugin, datapack)", buildKind)
	}
	if err != nil {
		return err
	}

	if !result.Success {
		// The captured log is the most diagnostic information available.
		fmt.Println("Build failed:")
		fmt.Println(result.Log)
		return fmt.Errorf("build failed after %dms", result.DurationMs)
	}

	a := result.Artifact
	fmt.Printf("✓ Built %s\n", filepath.Base(a.OutputPath))
	fmt.Printf("  Project:  %s\n", a.ProjectName)
	fmt.Printf("  Version:  %s\n", a.Version)
	fmt.Printf("  Type:     %s\n", a.ArtifactType)
	fmt.Printf("  Size:     %.2f KB\n", float64(a.FileSizeBytes)/1024)
	fmt.Printf("  Duration: %dms\n", a.DurationMs)
	fmt.Printf("  ID:       %s\n", a.ID)

	return nil
}
