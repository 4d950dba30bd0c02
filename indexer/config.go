package indexer

// IndexerConfig carries the scan-side settings. It is constructed once at
// process start and passed by reference into the Scanner; there is no
// hidden global state.
type IndexerConfig struct {
	IndexDir        string `mapstructure:"index_dir"`
	MaxBlobSize     int64  `mapstructure:"max_blob_size"`
	MaxLinesPerBlob int    `mapstructure:"max_lines_per_blob"`
}

// DefaultIndexerConfig values
var DefaultIndexerConfig = IndexerConfig{
	IndexDir:        ".blobsync",
	MaxBlobSize:     128 * 1024,
	MaxLinesPerBlob: 800,
}
