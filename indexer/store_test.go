package indexer

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/blobsync/indexer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() *models.ProjectIndex {
	index := models.NewProjectIndex()
	index.Entries["abc123"] = models.BlobEntry{Path: "a.py", BlobName: "abc123", ModTime: 1700000000000000000, Size: 42}
	index.Entries["def456"] = models.BlobEntry{Path: "b.py#chunk1of2", BlobName: "def456", ModTime: 1700000001000000000, Size: 9000}
	index.Entries["ghi789"] = models.BlobEntry{Path: "b.py#chunk2of2", BlobName: "ghi789", ModTime: 1700000001000000000, Size: 9000}
	return index
}

func TestIndexStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")
	saved := sampleIndex()

	require.NoError(t, store.Save(saved))
	assert.Greater(t, saved.LastIndexed, int64(0))

	loaded := store.Load()
	assert.Equal(t, saved.Entries, loaded.Entries)
	assert.Equal(t, saved.LastIndexed, loaded.LastIndexed)
}

func TestIndexStore_LoadMissingReturnsEmpty(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")

	index := store.Load()

	require.NotNil(t, index)
	assert.Empty(t, index.Entries)
}

func TestIndexStore_LoadCorruptReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	store := NewIndexStore(root, ".blobsync")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".blobsync"), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("not gzip at all"), 0644))

	index := store.Load()

	require.NotNil(t, index)
	assert.Empty(t, index.Entries)
}

func TestIndexStore_LoadChecksumMismatchReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	store := NewIndexStore(root, ".blobsync")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".blobsync"), 0755))

	persisted := persistedIndex{
		Entries:     sampleIndex().Entries,
		LastIndexed: 1700000000,
		Checksum:    "0000000000000000",
	}
	data, err := json.Marshal(persisted)
	require.NoError(t, err)

	f, err := os.Create(store.Path())
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	index := store.Load()

	require.NotNil(t, index)
	assert.Empty(t, index.Entries)
}

func TestIndexStore_SaveLeavesNoTempFile(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")

	require.NoError(t, store.Save(sampleIndex()))

	_, err := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestIndexStore_Clear(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")
	require.NoError(t, store.Save(sampleIndex()))

	require.NoError(t, store.Clear())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-absent index is not an error.
	assert.NoError(t, store.Clear())
}

func TestIndexStore_StatsMissingIndex(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")

	stats, err := store.Stats()

	require.NoError(t, err)
	assert.Equal(t, false, stats["exists"])
}

func TestIndexStore_Stats(t *testing.T) {
	store := NewIndexStore(t.TempDir(), ".blobsync")
	require.NoError(t, store.Save(sampleIndex()))

	stats, err := store.Stats()

	require.NoError(t, err)
	assert.Equal(t, true, stats["exists"])
	assert.Equal(t, 3, stats["entries"])
	assert.Equal(t, 2, stats["files"])
	assert.Equal(t, 1, stats["chunked_files"])
	assert.NotEmpty(t, stats["last_indexed"])
}
