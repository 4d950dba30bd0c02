package indexer

import (
	"fmt"
	"strings"

	"github.com/meysamhadeli/blobsync/indexer/models"
)

// ChunkContent splits sanitized text into bounded units. Files at or under
// the line threshold yield a single unit labeled with the bare path; larger
// files are split into contiguous ranges labeled "<path>#chunk<i>of<total>".
// Joining all unit contents with "\n" reproduces the input exactly.
func ChunkContent(relPath string, content string, maxLines int) []models.BlobUnit {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return []models.BlobUnit{{Label: relPath, Content: content}}
	}

	totalChunks := (len(lines) + maxLines - 1) / maxLines
	units := make([]models.BlobUnit, 0, totalChunks)
	for i := 0; i < totalChunks; i++ {
		start := i * maxLines
		end := start + maxLines
		if end > len(lines) {
			end = len(lines)
		}
		units = append(units, models.BlobUnit{
			Label:   fmt.Sprintf("%s#chunk%dof%d", relPath, i+1, totalChunks),
			Content: strings.Join(lines[start:end], "\n"),
		})
	}
	return units
}
