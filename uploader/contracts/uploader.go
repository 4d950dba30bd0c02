package contracts

import (
	"context"

	"github.com/meysamhadeli/blobsync/uploader/models"
)

// IBlobUploader transmits pending blobs to the remote store in bounded batches.
type IBlobUploader interface {
	// UploadBlobs sends all pending blobs. It returns the transfer stats and
	// a non-nil error if any attempted batch ultimately failed; the caller
	// uses the error solely for its all-or-nothing commit decision.
	UploadBlobs(ctx context.Context, blobs []models.PendingBlob) (models.UploadStats, error)
}
