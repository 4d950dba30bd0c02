package indexer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(count int) string {
	lines := make([]string, count)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestChunkContent_SmallFileSingleUnit(t *testing.T) {
	content := makeLines(50)

	units := ChunkContent("a.py", content, 800)

	require.Len(t, units, 1)
	assert.Equal(t, "a.py", units[0].Label)
	assert.Equal(t, content, units[0].Content)
}

func TestChunkContent_ExactThresholdSingleUnit(t *testing.T) {
	content := makeLines(800)

	units := ChunkContent("a.py", content, 800)

	require.Len(t, units, 1)
	assert.Equal(t, "a.py", units[0].Label)
}

func TestChunkContent_LargeFileChunkLabels(t *testing.T) {
	content := makeLines(2500)

	units := ChunkContent("b.py", content, 800)

	require.Len(t, units, 4)
	assert.Equal(t, "b.py#chunk1of4", units[0].Label)
	assert.Equal(t, "b.py#chunk2of4", units[1].Label)
	assert.Equal(t, "b.py#chunk3of4", units[2].Label)
	assert.Equal(t, "b.py#chunk4of4", units[3].Label)

	// Chunk sizes: 800/800/800/100 lines
	assert.Len(t, strings.Split(units[0].Content, "\n"), 800)
	assert.Len(t, strings.Split(units[1].Content, "\n"), 800)
	assert.Len(t, strings.Split(units[2].Content, "\n"), 800)
	assert.Len(t, strings.Split(units[3].Content, "\n"), 100)
}

// Concatenating all chunk contents in order with "\n" must reproduce the
// original text exactly.
func TestChunkContent_RoundTrip(t *testing.T) {
	for _, lineCount := range []int{1, 799, 800, 801, 1600, 2500} {
		content := makeLines(lineCount)

		units := ChunkContent("f.go", content, 800)

		parts := make([]string, 0, len(units))
		for _, unit := range units {
			parts = append(parts, unit.Content)
		}
		assert.Equal(t, content, strings.Join(parts, "\n"), "line count %d", lineCount)
	}
}

func TestChunkContent_NoOverlapNoDroppedLines(t *testing.T) {
	content := makeLines(1700)

	units := ChunkContent("f.go", content, 800)

	require.Len(t, units, 3)
	total := 0
	seen := make(map[string]bool)
	for _, unit := range units {
		for _, line := range strings.Split(unit.Content, "\n") {
			assert.False(t, seen[line], "duplicated line %q", line)
			seen[line] = true
			total++
		}
	}
	assert.Equal(t, 1700, total)
}
