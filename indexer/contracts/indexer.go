package contracts

import (
	"context"

	"github.com/meysamhadeli/blobsync/indexer/models"
)

// IIndexer reconciles the local project tree with the remote blob store.
type IIndexer interface {
	// Reconcile performs one full incremental pass and returns the set of
	// blob names the remote store should have for this project snapshot.
	// On upload failure the prior index is retained and the error is returned.
	Reconcile(ctx context.Context) (*models.ScanResult, error)

	// PreviewFile reports how one file would be filtered, decoded and chunked.
	PreviewFile(relPath string) (*models.FilePreview, error)

	// IndexStats returns statistics about the persisted index.
	IndexStats() (map[string]interface{}, error)

	// ClearIndex removes the persisted index so the next run rebuilds it.
	ClearIndex() error
}
