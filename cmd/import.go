package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/modpack"
	"modforge/internal/profile"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import shared mod archives",
}

var importProfileCmd = &cobra.Command{
	Use:   "profile <archive>",
	Short: "Import a modpack archive as a new profile",
	Long: `Create a new profile from a modpack archive. Referenced mod IDs not
present in the local inventory are dropped; stale references across
machines are expected.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportProfile,
}

var importWorldCmd = &cobra.Command{
	Use:   "world <archive>",
	Short: "Import a world-mods bundle into the deployment directories",
	Long: `Extract a world-mods bundle. Mods already present at their destination
are skipped, never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportWorld,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importProfileCmd)
	importCmd.AddCommand(importWorldCmd)
}

func runImportProfile(cmd *cobra.Command, args []string) error {
	p, dropped, err := modpack.ImportProfile(args[0], loadInventory())
	if err != nil {
		return err
	}

	if err := profile.NewStore(config.GetDataDir()).Add(p); err != nil {
		return err
	}

	fmt.Printf("✓ Imported profile %s (%s)\n", p.Name, p.ID)
	fmt.Printf("  Mods: %d resolved", len(p.EnabledModIDs))
	if dropped > 0 {
		fmt.Printf(", %d unknown dropped", dropped)
	}
	fmt.Println()

	return nil
}

func runImportWorld(cmd *cobra.Command, args []string) error {
	stats, err := modpack.ImportWorldMods(args[0], config.GetLocationRoots())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported world mods from %s\n", args[0])
	fmt.Printf("  Imported: %d\n", stats.Imported)
	fmt.Printf("  Skipped:  %d\n", stats.Skipped)

	return nil
}
