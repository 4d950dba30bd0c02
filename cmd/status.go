package cmd

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/spf13/cobra"
)

// statusCmd: blobsync status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show statistics about the persisted project index.",
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}
		handleStatusCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func handleStatusCommand(rootDependencies *RootDependencies) {
	stats, err := rootDependencies.Indexer.IndexStats()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading index: %v", err)))
		os.Exit(1)
	}

	fmt.Println(lipgloss.Info.Render("Index Statistics:"))
	if path, ok := stats["index_path"].(string); ok {
		fmt.Printf("  Index File: %s\n", path)
	}
	if exists, ok := stats["exists"].(bool); !ok || !exists {
		fmt.Println("  No index found. Run 'blobsync index' to create one.")
		return
	}
	if entries, ok := stats["entries"].(int); ok {
		fmt.Printf("  Entries: %d\n", entries)
	}
	if files, ok := stats["files"].(int); ok {
		fmt.Printf("  Indexed Files: %d\n", files)
	}
	if chunked, ok := stats["chunked_files"].(int); ok {
		fmt.Printf("  Chunked Files: %d\n", chunked)
	}
	if size, ok := stats["file_size"].(int64); ok {
		fmt.Printf("  Index Size: %.2f KB\n", float64(size)/1024)
	}
	if lastIndexed, ok := stats["last_indexed"].(string); ok {
		fmt.Printf("  Last Indexed: %s\n", lastIndexed)
	}
}
