package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

// Global cache for ignore patterns, keyed by ignore-file path
var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// GetIgnorePatterns reads and returns the patterns from the project's
// .gitignore file. If the file does not exist, it returns an empty list.
// Results are cached and invalidated on file modification.
func GetIgnorePatterns(root string) ([]string, error) {
	ignorePath := filepath.Join(root, ".gitignore")

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking .gitignore: %w", err)
	}

	// Check cache first
	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	// Update cache
	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: patterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return patterns, nil
}

// readIgnoreFile reads an ignore file and returns the list of patterns.
// Blank lines and comment lines are skipped.
func readIgnoreFile(ignorePath string) ([]string, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks if a relative path matches any of the ignore patterns.
// Patterns are matched against both the bare file name and the full relative
// path; a pattern naming a directory also matches everything under it.
func IsIgnored(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	name := relPath
	if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
		name = relPath[idx+1:]
	}
	parts := strings.Split(relPath, "/")

	for _, pattern := range patterns {
		if match, _ := filepath.Match(pattern, name); match {
			return true
		}
		if match, _ := filepath.Match(pattern, relPath); match {
			return true
		}
		clean := strings.TrimSuffix(pattern, "/")
		if strings.HasPrefix(relPath, clean+"/") {
			return true
		}
		for _, part := range parts {
			if part == clean {
				return true
			}
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
