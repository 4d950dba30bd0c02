package indexer

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/blobsync/utils"
)

// textExtensions is the allow-list of file extensions treated as indexable text.
var textExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true, ".mjs": true, ".cjs": true,
	".java": true, ".go": true, ".rs": true, ".cpp": true, ".c": true, ".cc": true, ".h": true,
	".hpp": true, ".hxx": true, ".cs": true,
	".rb": true, ".php": true, ".swift": true, ".kt": true, ".kts": true, ".scala": true,
	".clj": true, ".cljs": true,
	".lua": true, ".dart": true, ".m": true, ".mm": true, ".pl": true, ".pm": true,
	".r": true, ".jl": true,
	".ex": true, ".exs": true, ".erl": true, ".hs": true, ".zig": true, ".v": true,
	".nim": true, ".f90": true, ".f95": true,
	".groovy": true, ".gradle": true, ".sol": true, ".move": true,
	".md": true, ".mdx": true, ".txt": true, ".json": true, ".jsonc": true, ".json5": true,
	".yaml": true, ".yml": true, ".toml": true, ".xml": true, ".ini": true, ".conf": true,
	".cfg": true, ".properties": true,
	".html": true, ".htm": true, ".css": true, ".scss": true, ".sass": true, ".less": true,
	".styl": true,
	".vue": true, ".svelte": true, ".astro": true,
	".ejs": true, ".hbs": true, ".pug": true, ".jade": true, ".jinja": true, ".jinja2": true,
	".erb": true,
	".sql": true, ".sh": true, ".bash": true, ".zsh": true, ".fish": true, ".ps1": true,
	".bat": true, ".cmd": true,
	".graphql": true, ".gql": true, ".proto": true, ".prisma": true,
}

// binaryExtensions is the deny-list; it takes precedence over the allow-list.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true,
	".svg": true, ".webp": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true, ".ogg": true,
	".flv": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true, ".rar": true,
	".xz": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".o": true, ".a": true,
	".lib": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true,
	".pptx": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".pyc": true, ".pyo": true, ".class": true, ".jar": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".bin": true, ".dat": true, ".pak": true, ".bundle": true,
}

// excludedDirs are directory names never descended into: version control,
// caches, build output, editor metadata and dependency directories.
var excludedDirs = map[string]bool{
	".venv": true, "venv": true, ".env": true, "env": true, "node_modules": true,
	"vendor": true,
	".pnpm": true, ".yarn": true, "bower_components": true,
	".git": true, ".svn": true, ".hg": true,
	"__pycache__": true, ".pytest_cache": true, ".mypy_cache": true, ".tox": true,
	".ruff_cache": true,
	"dist": true, "build": true, "target": true, "out": true, "bin": true, "obj": true,
	".next": true, ".nuxt": true, ".output": true, ".vercel": true, ".netlify": true,
	".turbo": true,
	".parcel-cache": true, ".cache": true, ".temp": true, ".tmp": true,
	"coverage": true, ".nyc_output": true, "htmlcov": true,
	".idea": true, ".vscode": true, ".vs": true,
	".blobsync": true,
}

// PathFilter decides whether a filesystem path is eligible for indexing.
// It is a pure predicate over the metadata it is given.
type PathFilter struct {
	maxBlobSize    int64
	ignorePatterns []string
}

// NewPathFilter creates a filter using the project's .gitignore patterns.
func NewPathFilter(root string, maxBlobSize int64) (*PathFilter, error) {
	patterns, err := utils.GetIgnorePatterns(root)
	if err != nil {
		return nil, err
	}
	return &PathFilter{
		maxBlobSize:    maxBlobSize,
		ignorePatterns: patterns,
	}, nil
}

// IsExcludedDir reports whether a directory should be skipped entirely,
// either because its name is in the excluded set or because it is hidden.
func (f *PathFilter) IsExcludedDir(name string) bool {
	if excludedDirs[name] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}

// IsEligible reports whether a file should be indexed. All rules must pass:
// no excluded or hidden path component, extension in the text allow-list and
// not in the binary deny-list, size under the blob ceiling, and no match
// against the project ignore patterns.
func (f *PathFilter) IsEligible(relPath string, info fs.FileInfo) bool {
	relPath = filepath.ToSlash(relPath)

	for _, part := range strings.Split(relPath, "/") {
		if excludedDirs[part] {
			return false
		}
		if strings.HasPrefix(part, ".") && part != "." {
			return false
		}
	}

	ext := strings.ToLower(filepath.Ext(relPath))
	if binaryExtensions[ext] {
		return false
	}
	if !textExtensions[ext] {
		return false
	}

	// Files above the ceiling are skipped entirely, not chunked down.
	if info.Size() > f.maxBlobSize {
		return false
	}

	return !utils.IsIgnored(relPath, f.ignorePatterns)
}
