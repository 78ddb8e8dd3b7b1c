package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/deploy"
	"modforge/internal/store"
)

var deployTarget string

var deployCmd = &cobra.Command{
	Use:   "deploy <artifact-id>",
	Short: "Deploy an artifact into the live server directory",
	Long: `Copy an artifact into the live deployment directory, replacing any
prior build of the same project. At most one build per project is live
at a time.

The target directory defaults to the configured deployment directory for
the artifact's kind (deploy.plugins_dir / deploy.datapacks_dir).`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVar(&deployTarget, "target", "", "Override the deployment directory")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	artifactID := args[0]
	roots := config.GetBuildsRoots()

	target := deployTarget
	if target == "" {
		artifact, _, ok := store.FindByID(roots, artifactID)
		if !ok {
			return fmt.Errorf("artifact not found: %s", artifactID)
		}
		target = config.GetDeployDirFor(artifact.ArtifactType)
		if target == "" {
			return fmt.Errorf("no deployment directory configured for %s artifacts (set deploy.plugins_dir / deploy.datapacks_dir)", artifact.ArtifactType)
		}
	}

	result, err := deploy.Deploy(roots, artifactID, target)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Deployed %s\n", filepath.Base(result.DestinationPath))
	fmt.Printf("  Target: %s\n", result.DestinationPath)
	if result.ReplacedPath != "" {
		fmt.Printf("  Replaced: %s\n", filepath.Base(result.ReplacedPath))
	}

	return nil
}
