package config

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/blobsync/constants/lipgloss"
	"github.com/meysamhadeli/blobsync/indexer"
	"github.com/meysamhadeli/blobsync/uploader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string                   `mapstructure:"version"`
	Theme          string                   `mapstructure:"theme"`
	IndexerConfig  *indexer.IndexerConfig   `mapstructure:"indexer_config"`
	UploaderConfig *uploader.UploaderConfig `mapstructure:"uploader_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "1.1.0",
	Theme:          "dracula",
	IndexerConfig:  &indexer.DefaultIndexerConfig,
	UploaderConfig: &uploader.DefaultUploaderConfig,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("blobsync-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// If both fail, we'll continue with defaults
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("indexer_config.index_dir", DefaultConfig.IndexerConfig.IndexDir)
	viper.SetDefault("indexer_config.max_blob_size", DefaultConfig.IndexerConfig.MaxBlobSize)
	viper.SetDefault("indexer_config.max_lines_per_blob", DefaultConfig.IndexerConfig.MaxLinesPerBlob)
	viper.SetDefault("uploader_config.base_url", DefaultConfig.UploaderConfig.BaseURL)
	viper.SetDefault("uploader_config.api_token", DefaultConfig.UploaderConfig.ApiToken)
	viper.SetDefault("uploader_config.batch_count", DefaultConfig.UploaderConfig.BatchCount)
	viper.SetDefault("uploader_config.max_batch_size", DefaultConfig.UploaderConfig.MaxBatchSize)
	viper.SetDefault("uploader_config.max_retries", DefaultConfig.UploaderConfig.MaxRetries)
	viper.SetDefault("uploader_config.connect_timeout", DefaultConfig.UploaderConfig.ConnectTimeout)
	viper.SetDefault("uploader_config.request_timeout", DefaultConfig.UploaderConfig.RequestTimeout)
	viper.SetDefault("uploader_config.backoff_base", DefaultConfig.UploaderConfig.BackoffBase)
	viper.SetDefault("uploader_config.retry_after_default", DefaultConfig.UploaderConfig.RetryAfterDefault)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("indexer_config.index_dir", "BLOBSYNC_INDEX_DIR")
	_ = viper.BindEnv("indexer_config.max_blob_size", "BLOBSYNC_MAX_BLOB_SIZE")
	_ = viper.BindEnv("indexer_config.max_lines_per_blob", "BLOBSYNC_MAX_LINES_PER_BLOB")
	_ = viper.BindEnv("uploader_config.base_url", "BLOBSYNC_API_URL")
	_ = viper.BindEnv("uploader_config.api_token", "BLOBSYNC_API_TOKEN")
	_ = viper.BindEnv("uploader_config.batch_count", "BLOBSYNC_BATCH_COUNT")
	_ = viper.BindEnv("uploader_config.max_batch_size", "BLOBSYNC_MAX_BATCH_SIZE")
	_ = viper.BindEnv("uploader_config.max_retries", "BLOBSYNC_MAX_RETRIES")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("indexer_config.index_dir", rootCmd.PersistentFlags().Lookup("index_dir"))
	_ = viper.BindPFlag("indexer_config.max_blob_size", rootCmd.PersistentFlags().Lookup("max_blob_size"))
	_ = viper.BindPFlag("indexer_config.max_lines_per_blob", rootCmd.PersistentFlags().Lookup("max_lines_per_blob"))
	_ = viper.BindPFlag("uploader_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("uploader_config.api_token", rootCmd.PersistentFlags().Lookup("api_token"))
	_ = viper.BindPFlag("uploader_config.batch_count", rootCmd.PersistentFlags().Lookup("batch_count"))
	_ = viper.BindPFlag("uploader_config.max_batch_size", rootCmd.PersistentFlags().Lookup("max_batch_size"))
	_ = viper.BindPFlag("uploader_config.max_retries", rootCmd.PersistentFlags().Lookup("max_retries"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Theme configuration (used by the preview highlighter)
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the syntax highlighting theme for previews. (e.g., 'dracula', 'monokai', 'github')")

	// Indexer configuration
	rootCmd.PersistentFlags().String("index_dir", DefaultConfig.IndexerConfig.IndexDir, "The project-relative directory holding the persisted index.")
	rootCmd.PersistentFlags().Int64("max_blob_size", DefaultConfig.IndexerConfig.MaxBlobSize, "Files larger than this many bytes are skipped entirely.")
	rootCmd.PersistentFlags().Int("max_lines_per_blob", DefaultConfig.IndexerConfig.MaxLinesPerBlob, "Files with more lines than this are split into chunks.")

	// Uploader configuration
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.UploaderConfig.BaseURL, "The base URL of the remote blob store.")
	rootCmd.PersistentFlags().String("api_token", DefaultConfig.UploaderConfig.ApiToken, "The API token used to authenticate with the remote blob store.")
	rootCmd.PersistentFlags().Int("batch_count", DefaultConfig.UploaderConfig.BatchCount, "Maximum number of blobs per upload batch.")
	rootCmd.PersistentFlags().Int("max_batch_size", DefaultConfig.UploaderConfig.MaxBatchSize, "Maximum cumulative content bytes per upload batch.")
	rootCmd.PersistentFlags().Int("max_retries", DefaultConfig.UploaderConfig.MaxRetries, "Maximum attempts per batch before it is marked as failed.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
