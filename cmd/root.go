package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/meysamhadeli/blobsync/config"
	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/meysamhadeli/blobsync/indexer"
	"github.com/meysamhadeli/blobsync/indexer/contracts"
	"github.com/meysamhadeli/blobsync/uploader"
	"github.com/spf13/cobra"
)

// RootDependencies holds the wired components shared by all subcommands.
// Everything is constructed once here and passed down explicitly.
type RootDependencies struct {
	Config    *config.Config
	Cwd       string
	SessionID string
	Indexer   contracts.IIndexer
}

// rootCmd: blobsync
var rootCmd = &cobra.Command{
	Use:   "blobsync",
	Short: "Incremental content-addressed indexer for project files.",
	Long: `Blobsync scans a project tree, determines which files changed since the
last run, splits oversized files into bounded chunks, derives a stable
content-address for each unit, and reconciles the result with a remote blob
store through size- and count-bounded batch uploads.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// handleRootCommand loads the configuration and wires the indexer with its
// uploader for the current working directory.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(rootCmd, cwd)
	sessionID := uuid.NewString()

	blobUploader := uploader.NewBatchUploader(cfg.UploaderConfig, sessionID)
	scanner := indexer.NewScanner(cwd, cfg.IndexerConfig, blobUploader)

	return &RootDependencies{
		Config:    cfg,
		Cwd:       cwd,
		SessionID: sessionID,
		Indexer:   scanner,
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
