package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meysamhadeli/blobsync/uploader/contracts"
	"github.com/meysamhadeli/blobsync/uploader/models"
)

const userAgent = "blobsync.cli/1.1.0"

// ErrAuthFailed signals a 401/403 response; the whole upload operation is
// aborted immediately and nothing is committed.
var ErrAuthFailed = errors.New("authentication failed")

// BatchUploader groups pending blobs into count- and size-bounded batches
// and transmits each batch with bounded retries.
type BatchUploader struct {
	config    *UploaderConfig
	sessionID string
	client    *http.Client
}

// NewBatchUploader initializes a new BatchUploader. The session identifier
// is generated once per process and attached to every request.
func NewBatchUploader(config *UploaderConfig, sessionID string) contracts.IBlobUploader {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: config.ConnectTimeout,
		}).DialContext,
	}
	return &BatchUploader{
		config:    config,
		sessionID: sessionID,
		client: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: transport,
		},
	}
}

// UploadBlobs sends all pending blobs in batches. A batch that exhausts its
// retries marks the operation as failed but later batches are still
// attempted; a 401/403 aborts everything at once.
func (u *BatchUploader) UploadBlobs(ctx context.Context, blobs []models.PendingBlob) (models.UploadStats, error) {
	var stats models.UploadStats
	if len(blobs) == 0 || u.config.BaseURL == "" {
		return stats, nil
	}

	batches := makeBatches(blobs, u.config.BatchCount, u.config.MaxBatchSize)
	stats.Batches = len(batches)

	for _, batch := range batches {
		err := u.uploadBatchWithRetry(ctx, batch)
		if errors.Is(err, ErrAuthFailed) {
			stats.FailedBatches++
			return stats, err
		}
		if err != nil {
			stats.FailedBatches++
			log.Printf("Warning: batch of %d blobs failed: %v", len(batch), err)
			continue
		}
		stats.BlobsUploaded += len(batch)
		for _, blob := range batch {
			stats.BytesUploaded += int64(len(blob.Content))
		}
	}

	if stats.FailedBatches > 0 {
		return stats, fmt.Errorf("%d of %d batches failed", stats.FailedBatches, stats.Batches)
	}
	return stats, nil
}

// makeBatches accumulates blobs into batches closed when adding the next
// item would exceed the item count or the cumulative UTF-8 byte size. A
// single oversized item still forms its own batch.
func makeBatches(blobs []models.PendingBlob, maxCount int, maxSize int) [][]models.PendingBlob {
	var batches [][]models.PendingBlob
	var currentBatch []models.PendingBlob
	currentSize := 0

	for _, blob := range blobs {
		itemSize := len(blob.Content)
		if len(currentBatch) > 0 && (len(currentBatch) >= maxCount || currentSize+itemSize > maxSize) {
			batches = append(batches, currentBatch)
			currentBatch = nil
			currentSize = 0
		}
		currentBatch = append(currentBatch, blob)
		currentSize += itemSize
	}
	if len(currentBatch) > 0 {
		batches = append(batches, currentBatch)
	}
	return batches
}

// uploadBatchWithRetry issues one authenticated request per attempt,
// applying the retry table: 401/403 abort, 429 honors Retry-After, 5xx and
// transport errors back off exponentially, any other non-2xx fails after
// the attempt ceiling.
func (u *BatchUploader) uploadBatchWithRetry(ctx context.Context, batch []models.PendingBlob) error {
	payload := models.BatchUploadRequest{
		Blobs: make([]models.UploadBlob, 0, len(batch)),
	}
	for _, blob := range batch {
		payload.Blobs = append(payload.Blobs, models.UploadBlob{
			Path:    blob.Path,
			Content: blob.Content,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal batch request: %w", err)
	}

	url := strings.TrimSuffix(u.config.BaseURL, "/") + "/batch-upload"
	var lastErr error

	for attempt := 0; attempt < u.config.MaxRetries; attempt++ {
		resp, err := u.postBatch(ctx, url, body)
		if err != nil {
			// Transport-level failure: connection error or timeout.
			lastErr = err
			if errors.Is(ctx.Err(), context.Canceled) {
				return ctx.Err()
			}
			if attempt < u.config.MaxRetries-1 {
				log.Printf("Warning: transport error, retrying: %v", err)
				if err := u.sleep(ctx, u.backoff(attempt)); err != nil {
					return err
				}
			}
			continue
		}

		switch {
		case resp.statusCode == http.StatusUnauthorized || resp.statusCode == http.StatusForbidden:
			log.Printf("Error: auth failed (%d) uploading blobs, aborting", resp.statusCode)
			return ErrAuthFailed

		case resp.statusCode == http.StatusTooManyRequests:
			wait := parseRetryAfter(resp.retryAfter, u.config.RetryAfterDefault)
			log.Printf("Warning: rate limited, waiting %s", wait)
			lastErr = fmt.Errorf("rate limited (429)")
			if err := u.sleep(ctx, wait); err != nil {
				return err
			}

		case resp.statusCode >= 500:
			wait := u.backoff(attempt)
			log.Printf("Warning: server error %d, retrying in %s", resp.statusCode, wait)
			lastErr = fmt.Errorf("server error (%d)", resp.statusCode)
			if err := u.sleep(ctx, wait); err != nil {
				return err
			}

		case resp.statusCode >= 200 && resp.statusCode < 300:
			return nil

		default:
			wait := u.backoff(attempt)
			lastErr = fmt.Errorf("unexpected status code (%d)", resp.statusCode)
			if attempt < u.config.MaxRetries-1 {
				if err := u.sleep(ctx, wait); err != nil {
					return err
				}
			}
		}
	}

	return fmt.Errorf("upload failed after %d attempts: %w", u.config.MaxRetries, lastErr)
}

// batchResponse is the part of an HTTP response the retry policy needs.
type batchResponse struct {
	statusCode int
	retryAfter string
}

func (u *BatchUploader) postBatch(ctx context.Context, url string, body []byte) (*batchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+u.config.ApiToken)
	req.Header.Set("x-request-id", uuid.NewString())
	req.Header.Set("x-request-session-id", u.sessionID)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return &batchResponse{
		statusCode: resp.StatusCode,
		retryAfter: resp.Header.Get("Retry-After"),
	}, nil
}

// backoff returns the exponential delay for the given zero-based attempt.
func (u *BatchUploader) backoff(attempt int) time.Duration {
	return u.config.BackoffBase * time.Duration(1<<attempt)
}

// sleep waits for the given duration unless the context is cancelled first.
func (u *BatchUploader) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// parseRetryAfter interprets a Retry-After header value, supporting both
// integer-seconds and HTTP-date formats. Unparseable values fall back to
// the default, never to an error.
func parseRetryAfter(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return fallback
		}
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		wait := time.Until(when)
		if wait < 0 {
			return fallback
		}
		return wait
	}
	return fallback
}
