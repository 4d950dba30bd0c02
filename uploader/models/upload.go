package models

// PendingBlob is a blob that the scanner determined is missing remotely.
type PendingBlob struct {
	Path     string
	Content  string
	BlobName string
}

// UploadBlob is the wire form of one blob inside a batch request.
type UploadBlob struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// BatchUploadRequest is the JSON body of POST <base>/batch-upload.
type BatchUploadRequest struct {
	Blobs []UploadBlob `json:"blobs"`
}

// UploadStats accumulates transfer accounting for one upload operation.
type UploadStats struct {
	Batches       int
	FailedBatches int
	BlobsUploaded int
	BytesUploaded int64
}
