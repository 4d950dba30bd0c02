package models

// BlobEntry holds the persisted metadata for one uploaded blob.
// ModTime and Size always describe the originating file, not the chunk,
// so every entry of a chunk group carries the same stat pair.
type BlobEntry struct {
	Path     string `json:"path"`
	BlobName string `json:"blob_name"`
	ModTime  int64  `json:"mtime"`
	Size     int64  `json:"size"`
}

// ProjectIndex is the durable record of what the remote store already has.
type ProjectIndex struct {
	Entries     map[string]BlobEntry
	LastIndexed int64
}

// NewProjectIndex creates an empty index.
func NewProjectIndex() *ProjectIndex {
	return &ProjectIndex{
		Entries: make(map[string]BlobEntry),
	}
}

// BlobNames returns the current set of blob names in no particular order.
func (pi *ProjectIndex) BlobNames() []string {
	names := make([]string, 0, len(pi.Entries))
	for name := range pi.Entries {
		names = append(names, name)
	}
	return names
}

// BlobUnit is one addressable piece of a file: either the whole file or a
// contiguous chunk of it, labeled with the chunk suffix.
type BlobUnit struct {
	Label   string
	Content string
}

// ScanResult summarizes one reconcile pass.
type ScanResult struct {
	BlobNames        []string
	FilesScanned     int
	FilesReused      int
	FilesReprocessed int
	BlobsUploaded    int
	BytesUploaded    int64
	Changed          bool
	Committed        bool
}

// FilePreview describes how a single file would be indexed.
type FilePreview struct {
	RelativePath string
	Skipped      bool
	Reason       string
	Units        []BlobUnit
}
