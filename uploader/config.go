package uploader

import "time"

// UploaderConfig carries the upload-side settings, constructed once at
// process start and passed into the BatchUploader.
type UploaderConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ApiToken     string        `mapstructure:"api_token"`
	BatchCount   int           `mapstructure:"batch_count"`
	MaxBatchSize int           `mapstructure:"max_batch_size"`
	MaxRetries   int           `mapstructure:"max_retries"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// BackoffBase is the unit of the exponential retry delay; tests shrink it.
	BackoffBase time.Duration `mapstructure:"backoff_base"`

	// RetryAfterDefault is used when a 429 response carries no parseable
	// Retry-After header.
	RetryAfterDefault time.Duration `mapstructure:"retry_after_default"`
}

// DefaultUploaderConfig values
var DefaultUploaderConfig = UploaderConfig{
	BatchCount:        30,
	MaxBatchSize:      1 * 1024 * 1024,
	MaxRetries:        3,
	ConnectTimeout:    15 * time.Second,
	RequestTimeout:    60 * time.Second,
	BackoffBase:       1 * time.Second,
	RetryAfterDefault: 5 * time.Second,
}
