package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/store"
)

var removeCmd = &cobra.Command{
	Use:   "remove <artifact-id>",
	Short: "Remove an artifact from history and delete its file",
	Long: `Delete an artifact's backing file and drop it from its project's
build history. The file delete is best-effort; the history entry is
removed either way.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	artifactID := args[0]

	artifact, projectDir, ok := store.FindByID(config.GetBuildsRoots(), artifactID)
	if !ok {
		return fmt.Errorf("artifact not found: %s", artifactID)
	}

	if err := os.Remove(artifact.OutputPath); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to delete artifact file", "path", artifact.OutputPath, "err", err)
	}

	if err := store.Remove(projectDir, artifactID); err != nil {
		return err
	}

	fmt.Printf("✓ Removed %s (%s %s)\n", artifactID, artifact.ProjectName, artifact.Version)
	return nil
}
