package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/deploy"
	"modforge/internal/models"
)

var (
	installedTarget string
	installedJSON   bool
	installedToon   bool
)

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List mods live in the deployment directories",
	Long: `Scan the configured deployment directories and decode every
recognized mod filename. Unrelated files are ignored.

Examples:
  modforge installed
  modforge installed --target /srv/minecraft/plugins`,
	RunE: runInstalled,
}

func init() {
	rootCmd.AddCommand(installedCmd)

	installedCmd.Flags().StringVar(&installedTarget, "target", "", "Scan a specific directory instead of the configured ones")
	installedCmd.Flags().BoolVar(&installedJSON, "json", false, "Output as JSON")
	installedCmd.Flags().BoolVar(&installedToon, "toon", false, "Output as Toon")
}

func runInstalled(cmd *cobra.Command, args []string) error {
	var targets []string
	if installedTarget != "" {
		targets = []string{installedTarget}
	} else {
		for _, dir := range []string{config.GetPluginsDeployDir(), config.GetDatapacksDeployDir()} {
			if dir != "" {
				targets = append(targets, dir)
			}
		}
		if len(targets) == 0 {
			return fmt.Errorf("no deployment directory configured (set deploy.plugins_dir / deploy.datapacks_dir or use --target)")
		}
	}

	var installed []models.InstalledMod
	for _, target := range targets {
		mods, err := deploy.ListInstalled(target)
		if err != nil {
			return err
		}
		installed = append(installed, mods...)
	}

	if len(installed) == 0 {
		fmt.Println("No mods installed")
		return nil
	}

	if installedJSON {
		data, err := json.MarshalIndent(installed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if installedToon {
		output, err := gotoon.Encode(installed)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Found %d installed mod(s):\n\n", len(installed))
	for _, m := range installed {
		fmt.Printf("  %s\n", m.FileName)
		fmt.Printf("    Project:   %s\n", m.ProjectName)
		fmt.Printf("    Version:   %s\n", m.Version)
		if m.BuildNumber > 0 {
			fmt.Printf("    Build:     %d\n", m.BuildNumber)
		}
		fmt.Printf("    Type:      %s\n", m.ArtifactType)
		fmt.Printf("    Installed: %s\n", m.InstalledAt.Format("2006-01-02 15:04"))
		fmt.Println()
	}

	return nil
}
