package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/spf13/cobra"
)

// resetIndexCmd represents the reset-index command
var resetIndexCmd = &cobra.Command{
	Use:   "reset-index",
	Short: "Remove the persisted project index.",
	Long: `The 'reset-index' command deletes the on-disk index file so the next run
performs a full rebuild and re-uploads every blob the remote store reports
as missing. Use it when the index is suspected to be corrupt or stale.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handleResetIndexCommand(force, cmd)
	},
}

func init() {
	resetIndexCmd.Flags().BoolP("force", "f", false, "Force index reset without confirmation")

	rootCmd.AddCommand(resetIndexCmd)
}

func handleResetIndexCommand(force bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	// Confirm reset (if not forced)
	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Are you sure you want to reset the project index? (y/N): ")
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Index reset cancelled."))
			return
		}
	}

	if err := rootDependencies.Indexer.ClearIndex(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting index: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render("✓ Project index has been successfully reset!"))
}
