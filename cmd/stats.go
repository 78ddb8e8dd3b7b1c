package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"modforge/internal/config"
	"modforge/internal/store"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show build statistics per project",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output as Toon")
}

type projectStats struct {
	Project    string `json:"project"`
	Artifacts  int    `json:"artifacts"`
	Versions   int    `json:"versions"`
	TotalKB    string `json:"totalKb"`
	LatestName string `json:"latest"`
}

func runStats(cmd *cobra.Command, args []string) error {
	located := store.ListAll(config.GetBuildsRoots())
	if len(located) == 0 {
		fmt.Println("No artifacts found")
		return nil
	}

	type agg struct {
		count    int
		bytes    int64
		versions map[string]bool
		latest   string
	}
	byProject := make(map[string]*agg)

	// ListAll is newest-first, so the first artifact seen per project is
	// its latest build.
	for _, l := range located {
		a := l.Artifact
		entry, ok := byProject[a.ProjectName]
		if !ok {
			entry = &agg{versions: make(map[string]bool), latest: a.Version}
			byProject[a.ProjectName] = entry
		}
		entry.count++
		entry.bytes += a.FileSizeBytes
		entry.versions[a.Version] = true
	}

	var stats []projectStats
	for project, entry := range byProject {
		stats = append(stats, projectStats{
			Project:    project,
			Artifacts:  entry.count,
			Versions:   len(entry.versions),
			TotalKB:    fmt.Sprintf("%.2f", float64(entry.bytes)/1024),
			LatestName: entry.latest,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Project < stats[j].Project })

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Tracked projects: %d\n\n", len(stats))
	for _, s := range stats {
		fmt.Printf("  %s\n", s.Project)
		fmt.Printf("    Artifacts: %d\n", s.Artifacts)
		fmt.Printf("    Versions:  %d\n", s.Versions)
		fmt.Printf("    Latest:    %s\n", s.LatestName)
		fmt.Printf("    Total:     %s KB\n", s.TotalKB)
		fmt.Println()
	}

	return nil
}
