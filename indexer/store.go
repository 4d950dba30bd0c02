package indexer

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meysamhadeli/blobsync/indexer/models"
	"github.com/zeebo/xxh3"
)

const indexFileName = "index.json.gz"

// persistedIndex is the on-disk form of the project index.
type persistedIndex struct {
	Entries     map[string]models.BlobEntry `json:"entries"`
	LastIndexed int64                       `json:"last_indexed"`
	Checksum    string                      `json:"checksum,omitempty"`
}

// IndexStore persists the project index as a gzip-compressed JSON document.
// Writes go to a temporary file in the same directory followed by an atomic
// rename, so a reader never observes a partially written index.
type IndexStore struct {
	indexPath string
}

// NewIndexStore creates a store rooted at <root>/<indexDir>/index.json.gz.
func NewIndexStore(root string, indexDir string) *IndexStore {
	return &IndexStore{
		indexPath: filepath.Join(root, indexDir, indexFileName),
	}
}

// Path returns the location of the index file.
func (s *IndexStore) Path() string {
	return s.indexPath
}

// Load returns the persisted index, or an empty one if the backing file is
// absent or fails to parse. Corruption is a recoverable condition: the
// system degrades to a full reindex instead of failing the run.
func (s *IndexStore) Load() *models.ProjectIndex {
	f, err := os.Open(s.indexPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to open index, rebuilding: %v", err)
		}
		return models.NewProjectIndex()
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		log.Printf("Warning: failed to load index, rebuilding: %v", err)
		return models.NewProjectIndex()
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		log.Printf("Warning: failed to load index, rebuilding: %v", err)
		return models.NewProjectIndex()
	}

	var persisted persistedIndex
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Printf("Warning: failed to parse index, rebuilding: %v", err)
		return models.NewProjectIndex()
	}

	if persisted.Checksum != "" {
		computed, err := entriesChecksum(persisted.Entries)
		if err != nil || computed != persisted.Checksum {
			log.Printf("Warning: index checksum mismatch, rebuilding")
			return models.NewProjectIndex()
		}
	}

	index := &models.ProjectIndex{
		Entries:     persisted.Entries,
		LastIndexed: persisted.LastIndexed,
	}
	if index.Entries == nil {
		index.Entries = make(map[string]models.BlobEntry)
	}
	return index
}

// Save writes the index durably and stamps LastIndexed with the current time.
func (s *IndexStore) Save(index *models.ProjectIndex) error {
	index.LastIndexed = time.Now().Unix()

	if err := os.MkdirAll(filepath.Dir(s.indexPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	checksum, err := entriesChecksum(index.Entries)
	if err != nil {
		return fmt.Errorf("failed to checksum index entries: %w", err)
	}

	persisted := persistedIndex{
		Entries:     index.Entries,
		LastIndexed: index.LastIndexed,
		Checksum:    checksum,
	}
	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}

	tmpPath := s.indexPath + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary index file: %w", err)
	}

	gz := gzip.NewWriter(tmp)
	if _, err := gz.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary index file: %w", err)
	}

	if err := os.Rename(tmpPath, s.indexPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// Clear removes the persisted index file.
func (s *IndexStore) Clear() error {
	if err := os.Remove(s.indexPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete index file: %w", err)
	}
	return nil
}

// Stats returns statistics about the persisted index.
func (s *IndexStore) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	stats["index_path"] = s.indexPath

	info, err := os.Stat(s.indexPath)
	if os.IsNotExist(err) {
		stats["exists"] = false
		return stats, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}
	stats["exists"] = true
	stats["file_size"] = info.Size()

	index := s.Load()
	stats["entries"] = len(index.Entries)

	chunked := make(map[string]bool)
	files := make(map[string]bool)
	for _, entry := range index.Entries {
		base := entry.Path
		if idx := strings.Index(base, "#chunk"); idx >= 0 {
			base = base[:idx]
			chunked[base] = true
		}
		files[base] = true
	}
	stats["files"] = len(files)
	stats["chunked_files"] = len(chunked)

	if index.LastIndexed > 0 {
		stats["last_indexed"] = time.Unix(index.LastIndexed, 0).Format(time.RFC3339)
	}
	return stats, nil
}

// entriesChecksum computes a fast integrity fingerprint over the serialized
// entry map. json.Marshal sorts map keys, so the digest is deterministic.
func entriesChecksum(entries map[string]models.BlobEntry) (string, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxh3.Hash(data)), nil
}
