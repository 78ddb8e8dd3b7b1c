package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/store"
)

var infoShowLog bool

var infoCmd = &cobra.Command{
	Use:   "info <artifact-id>",
	Short: "Show details for an artifact",
	Long: `Display the recorded details of a single artifact, including its
captured build log.

Example:
  modforge info 6f1a... --log`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoShowLog, "log", false, "Print the captured build log")
}

func runInfo(cmd *cobra.Command, args []string) error {
	artifact, projectDir, ok := store.FindByID(config.GetBuildsRoots(), args[0])
	if !ok {
		return fmt.Errorf("artifact not found: %s", args[0])
	}

	fmt.Printf("Artifact: %s\n\n", artifact.ID)
	fmt.Printf("Project:   %s\n", artifact.ProjectName)
	fmt.Printf("Version:   %s\n", artifact.Version)
	fmt.Printf("Type:      %s\n", artifact.ArtifactType)
	fmt.Printf("Built:     %s\n", artifact.BuiltAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration:  %dms\n", artifact.DurationMs)
	fmt.Printf("Size:      %.2f KB\n", float64(artifact.FileSizeBytes)/1024)
	fmt.Printf("Output:    %s\n", artifact.OutputPath)
	fmt.Printf("History:   %s\n", projectDir)

	if infoShowLog {
		if artifact.BuildLog == "" {
			fmt.Println("\nNo build log recorded")
		} else {
			fmt.Println("\nBuild log:")
			fmt.Println(artifact.BuildLog)
			if artifact.LogTruncated {
				fmt.Println("(log truncated)")
			}
		}
	}

	return nil
}
