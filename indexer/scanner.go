package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/blobsync/indexer/contracts"
	"github.com/meysamhadeli/blobsync/indexer/models"
	uploader_contracts "github.com/meysamhadeli/blobsync/uploader/contracts"
	uploader_models "github.com/meysamhadeli/blobsync/uploader/models"
)

// chunkSeparator marks the chunk suffix appended to a source path label.
const chunkSeparator = "#chunk"

// Scanner orchestrates one incremental pass: walk the tree, reuse prior
// entries where the file stat is unchanged, re-chunk and re-hash the rest,
// upload what the remote store is missing, and commit the new index only
// when every batch succeeded.
type Scanner struct {
	root     string
	config   *IndexerConfig
	store    *IndexStore
	uploader uploader_contracts.IBlobUploader
}

// blobRecord is the transient result of processing one file.
type blobRecord struct {
	blobName string
	label    string
	content  string
}

// NewScanner initializes a new Scanner rooted at the given project directory.
func NewScanner(root string, config *IndexerConfig, blobUploader uploader_contracts.IBlobUploader) contracts.IIndexer {
	return &Scanner{
		root:     root,
		config:   config,
		store:    NewIndexStore(root, config.IndexDir),
		uploader: blobUploader,
	}
}

// Reconcile performs one full incremental pass and returns the set of blob
// names the remote store should have for this project snapshot. On upload
// failure the prior index is kept, in memory and on disk, and the error is
// returned for reporting.
func (s *Scanner) Reconcile(ctx context.Context) (*models.ScanResult, error) {
	index := s.store.Load()
	oldEntries := index.Entries

	filter, err := NewPathFilter(s.root, s.config.MaxBlobSize)
	if err != nil {
		return nil, err
	}

	currentFiles := s.walkFiles(filter)

	// Group prior entries by their originating source path so a whole chunk
	// set is validated with a single stat comparison.
	oldByPath := groupEntriesByPath(oldEntries)

	newEntries := make(map[string]models.BlobEntry)
	var pending []uploader_models.PendingBlob
	changed := false

	result := &models.ScanResult{
		FilesScanned: len(currentFiles),
	}

	for rel, absPath := range currentFiles {
		info, err := os.Stat(absPath)
		if err != nil {
			// File disappeared mid-scan; treat as no longer present.
			continue
		}
		modTime := info.ModTime().UnixNano()
		size := info.Size()

		if group, ok := oldByPath[rel]; ok && group[0].ModTime == modTime && group[0].Size == size {
			for _, cached := range group {
				newEntries[cached.BlobName] = cached
			}
			result.FilesReused++
			continue
		}

		blobs := s.processFile(absPath, rel)
		if len(blobs) == 0 {
			// Binary, undecodable or empty content: prior entries for this
			// path are dropped by omission.
			continue
		}
		changed = true
		result.FilesReprocessed++

		for _, blob := range blobs {
			newEntries[blob.blobName] = models.BlobEntry{
				Path:     blob.label,
				BlobName: blob.blobName,
				ModTime:  modTime,
				Size:     size,
			}
			if _, exists := oldEntries[blob.blobName]; !exists {
				pending = append(pending, uploader_models.PendingBlob{
					Path:     blob.label,
					Content:  blob.content,
					BlobName: blob.blobName,
				})
			}
		}
	}

	if !sameKeySet(newEntries, oldEntries) {
		changed = true
	}
	result.Changed = changed

	if !changed {
		result.BlobNames = index.BlobNames()
		return result, nil
	}

	index.Entries = newEntries

	if len(pending) > 0 {
		stats, err := s.uploader.UploadBlobs(ctx, pending)
		result.BlobsUploaded = stats.BlobsUploaded
		result.BytesUploaded = stats.BytesUploaded
		if err != nil {
			// All-or-nothing commit: discard the newly computed entries and
			// keep the prior snapshot untouched.
			index.Entries = oldEntries
			result.BlobNames = index.BlobNames()
			return result, fmt.Errorf("upload failed, index not committed: %w", err)
		}
	}

	if err := s.store.Save(index); err != nil {
		return result, fmt.Errorf("failed to persist index: %w", err)
	}
	result.Committed = true
	result.BlobNames = index.BlobNames()
	return result, nil
}

// walkFiles enumerates all eligible files under the project root, returning
// a map from slash-separated relative path to absolute path. File-level
// errors are absorbed: a path that cannot be walked is simply not indexed.
func (s *Scanner) walkFiles(filter *PathFilter) map[string]string {
	currentFiles := make(map[string]string)

	_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == s.root {
			return nil
		}
		if d.IsDir() {
			if filter.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if filter.IsEligible(rel, info) {
			currentFiles[rel] = path
		}
		return nil
	})

	return currentFiles
}

// processFile reads, sanitizes, chunks and hashes one file. An empty result
// means the file contributes no blobs.
func (s *Scanner) processFile(absPath string, rel string) []blobRecord {
	content, ok := DetectAndRead(absPath)
	if !ok {
		return nil
	}
	content = SanitizeContent(content)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	units := ChunkContent(rel, content, s.config.MaxLinesPerBlob)
	records := make([]blobRecord, 0, len(units))
	for _, unit := range units {
		records = append(records, blobRecord{
			blobName: HashBlob(unit.Label, unit.Content),
			label:    unit.Label,
			content:  unit.Content,
		})
	}
	return records
}

// PreviewFile reports how one file would be filtered, decoded and chunked.
func (s *Scanner) PreviewFile(relPath string) (*models.FilePreview, error) {
	relPath = filepath.ToSlash(relPath)
	preview := &models.FilePreview{RelativePath: relPath}

	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	filter, err := NewPathFilter(s.root, s.config.MaxBlobSize)
	if err != nil {
		return nil, err
	}
	if !filter.IsEligible(relPath, info) {
		preview.Skipped = true
		if info.Size() > s.config.MaxBlobSize {
			preview.Reason = "file exceeds the maximum blob size"
		} else {
			preview.Reason = "path is not eligible for indexing"
		}
		return preview, nil
	}

	content, ok := DetectAndRead(absPath)
	if !ok {
		preview.Skipped = true
		preview.Reason = "binary or undecodable content"
		return preview, nil
	}
	content = SanitizeContent(content)
	if strings.TrimSpace(content) == "" {
		preview.Skipped = true
		preview.Reason = "empty after normalization"
		return preview, nil
	}

	preview.Units = ChunkContent(relPath, content, s.config.MaxLinesPerBlob)
	return preview, nil
}

// IndexStats returns statistics about the persisted index.
func (s *Scanner) IndexStats() (map[string]interface{}, error) {
	return s.store.Stats()
}

// ClearIndex removes the persisted index so the next run is a full rebuild.
func (s *Scanner) ClearIndex() error {
	return s.store.Clear()
}

// groupEntriesByPath groups entries by source path with any chunk suffix
// stripped, so all chunks of one file land in the same group.
func groupEntriesByPath(entries map[string]models.BlobEntry) map[string][]models.BlobEntry {
	grouped := make(map[string][]models.BlobEntry)
	for _, entry := range entries {
		base := entry.Path
		if idx := strings.Index(base, chunkSeparator); idx >= 0 {
			base = base[:idx]
		}
		grouped[base] = append(grouped[base], entry)
	}
	return grouped
}

// sameKeySet reports whether two entry maps contain exactly the same blob names.
func sameKeySet(a map[string]models.BlobEntry, b map[string]models.BlobEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for name := range a {
		if _, ok := b[name]; !ok {
			return false
		}
	}
	return true
}
