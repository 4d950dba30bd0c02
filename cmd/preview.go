package cmd

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/meysamhadeli/blobsync/utils"
	"github.com/spf13/cobra"
)

// previewCmd: blobsync preview <file>
var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show how a file would be filtered, decoded and chunked.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}
		handlePreviewCommand(rootDependencies, args[0])
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func handlePreviewCommand(rootDependencies *RootDependencies, relPath string) {
	preview, err := rootDependencies.Indexer.PreviewFile(relPath)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	if preview.Skipped {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Skipped: %s (%s)", preview.RelativePath, preview.Reason)))
		return
	}

	language := utils.DetectLanguageFromPath(preview.RelativePath)
	for _, unit := range preview.Units {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("── %s ──", unit.Label)))
		if err := utils.HighlightCode(os.Stdout, unit.Content, language, rootDependencies.Config.Theme); err != nil {
			// Highlighting is a nicety; fall back to plain output.
			fmt.Println(unit.Content)
		}
		fmt.Println()
	}
	fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("%d blob(s) for %s", len(preview.Units), preview.RelativePath)))
}
