package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/store"
)

var (
	listProject string
	listJSON    bool
	listToon    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked artifacts",
	Long: `List every artifact in the build history across all builds roots,
newest first. Entries whose backing file was deleted out-of-band are
not shown.

Examples:
  modforge list
  modforge list --project Alpha
  modforge list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listProject, "project", "", "Filter by project name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output as Toon")
}

type artifactView struct {
	ID      string `json:"id"`
	Project string `json:"project"`
	Version string `json:"version"`
	Build   string `json:"build"`
	Type    string `json:"type"`
	BuiltAt string `json:"builtAt"`
	SizeKB  string `json:"sizeKb"`
}

func runList(cmd *cobra.Command, args []string) error {
	located := store.ListAll(config.GetBuildsRoots())

	var views []artifactView
	for _, l := range located {
		a := l.Artifact
		if listProject != "" && a.ProjectName != listProject {
			continue
		}
		views = append(views, artifactView{
			ID:      a.ID,
			Project: a.ProjectName,
			Version: a.Version,
			Build:   filepath.Base(a.OutputPath),
			Type:    string(a.ArtifactType),
			BuiltAt: a.BuiltAt.Format("2006-01-02 15:04"),
			SizeKB:  fmt.Sprintf("%.2f", float64(a.FileSizeBytes)/1024),
		})
	}

	if len(views) == 0 {
		fmt.Println("No artifacts found")
		return nil
	}

	if listJSON {
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if listToon {
		output, err := gotoon.Encode(views)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Found %d artifact(s):\n\n", len(views))
	for _, v := range views {
		fmt.Printf("  %s\n", v.Build)
		fmt.Printf("    Project: %s\n", v.Project)
		fmt.Printf("    Version: %s\n", v.Version)
		fmt.Printf("    Type:    %s\n", v.Type)
		fmt.Printf("    Built:   %s\n", v.BuiltAt)
		fmt.Printf("    Size:    %s KB\n", v.SizeKB)
		fmt.Printf("    ID:      %s\n", v.ID)
		fmt.Println()
	}

	return nil
}
