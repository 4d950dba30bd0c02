package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/meysamhadeli/blobsync/uploader"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// indexCmd: blobsync index
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the project and reconcile it with the remote blob store.",
	Long: `The 'index' command performs one incremental pass over the project tree.
Unchanged files are validated through their modification time and size and
reused without re-reading; changed files are re-chunked, re-hashed and the
missing blobs uploaded in bounded batches. The on-disk index is committed
only when every batch succeeded.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}
		handleIndexCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func handleIndexCommand(rootDependencies *RootDependencies) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("Indexing project...")

	result, err := rootDependencies.Indexer.Reconcile(ctx)

	spinnerScan.Stop()
	fmt.Print("\r")

	if err != nil {
		if errors.Is(err, uploader.ErrAuthFailed) {
			fmt.Println(lipgloss.Red.Render("❌ Authentication failed. Check your API token; the index was left unchanged."))
		} else {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
		}
		os.Exit(1)
	}

	if result.Changed {
		fmt.Println(lipgloss.Green.Render("✔️ Index committed."))
	} else {
		fmt.Println(lipgloss.Green.Render("✔️ Project unchanged, nothing to upload."))
	}

	summary := fmt.Sprintf(
		"Files Scanned: %d - Reused: %d - Reprocessed: %d\nBlobs Uploaded: %d (%.1f KB) - Entries: %d",
		result.FilesScanned, result.FilesReused, result.FilesReprocessed,
		result.BlobsUploaded, float64(result.BytesUploaded)/1024, len(result.BlobNames),
	)
	fmt.Println(lipgloss.BoxStyle.Render(summary))
}
