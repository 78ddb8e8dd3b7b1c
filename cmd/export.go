package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/modpack"
	"modforge/internal/profile"
)

var (
	exportOutput string
	exportMods   []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export shareable mod archives",
}

var exportProfileCmd = &cobra.Command{
	Use:   "profile <profile-id>",
	Short: "Export a profile as a modpack archive",
	Long: `Write a lightweight modpack archive referencing the profile's enabled
mod IDs. No mod payload is embedded; IDs are re-resolved against the
live inventory at import time.

Example:
  modforge export profile 6f1a... --output survival.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runExportProfile,
}

var exportWorldCmd = &cobra.Command{
	Use:   "world <world-id>",
	Short: "Export a world's enabled mods as a self-contained bundle",
	Long: `Write a world-mods bundle embedding both a manifest and the actual mod
payload files. The enabled mod IDs for the world are passed with --mod.

Example:
  modforge export world world-1 --mod Alpha-1.0.0-build2.jar --output world1-mods.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runExportWorld,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportProfileCmd)
	exportCmd.AddCommand(exportWorldCmd)

	exportProfileCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path")
	exportWorldCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path")
	exportWorldCmd.Flags().StringSliceVar(&exportMods, "mod", []string{}, "Enabled mod ID (repeatable)")
}

func runExportProfile(cmd *cobra.Command, args []string) error {
	profiles := profile.NewStore(config.GetDataDir())
	p, ok := profiles.Find(args[0])
	if !ok {
		return fmt.Errorf("profile not found: %s", args[0])
	}

	output := exportOutput
	if output == "" {
		output = fmt.Sprintf("modpack-%s.zip", args[0])
	}

	if err := modpack.ExportProfile(p, output); err != nil {
		return err
	}

	fmt.Printf("✓ Exported profile %s to %s (%d mod reference(s))\n", p.Name, output, len(p.EnabledModIDs))
	return nil
}

func runExportWorld(cmd *cobra.Command, args []string) error {
	worldID := args[0]

	output := exportOutput
	if output == "" {
		output = fmt.Sprintf("worldmods-%s.zip", worldID)
	}

	if err := modpack.ExportWorldMods(worldID, exportMods, loadInventory(), output); err != nil {
		return err
	}

	fmt.Printf("✓ Exported world %s mods to %s\n", worldID, output)
	return nil
}
