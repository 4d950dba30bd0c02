package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGitignore(t *testing.T, root string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(content), 0644))
}

func TestGetIgnorePatterns_MissingFile(t *testing.T) {
	ClearIgnoreCache()

	patterns, err := GetIgnorePatterns(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestGetIgnorePatterns_SkipsBlanksAndComments(t *testing.T) {
	ClearIgnoreCache()
	root := t.TempDir()
	writeGitignore(t, root, "# build output\n\ndist/\n  *.log  \n\n# temp\n.tmp\n")

	patterns, err := GetIgnorePatterns(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"dist/", "*.log", ".tmp"}, patterns)
}

func TestGetIgnorePatterns_CacheInvalidatedOnModification(t *testing.T) {
	ClearIgnoreCache()
	root := t.TempDir()
	writeGitignore(t, root, "first\n")

	patterns, err := GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, patterns)

	writeGitignore(t, root, "second\n")
	// Force a distinct mtime; some filesystems have coarse resolution.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, ".gitignore"), future, future))

	patterns, err = GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, patterns)
}

func TestIsIgnored_BareNameMatch(t *testing.T) {
	patterns := []string{"*.log"}

	assert.True(t, IsIgnored("debug.log", patterns))
	assert.True(t, IsIgnored("logs/debug.log", patterns))
	assert.False(t, IsIgnored("debug.txt", patterns))
}

func TestIsIgnored_FullPathMatch(t *testing.T) {
	patterns := []string{"docs/internal.md"}

	assert.True(t, IsIgnored("docs/internal.md", patterns))
	assert.False(t, IsIgnored("docs/public.md", patterns))
}

func TestIsIgnored_DirectoryPattern(t *testing.T) {
	patterns := []string{"generated/"}

	assert.True(t, IsIgnored("generated/out.py", patterns))
	assert.True(t, IsIgnored("generated/deep/nested.py", patterns))
	assert.True(t, IsIgnored("src/generated/out.py", patterns))
	assert.False(t, IsIgnored("src/main.py", patterns))
}

func TestIsIgnored_NoPatterns(t *testing.T) {
	assert.False(t, IsIgnored("anything.py", nil))
}
