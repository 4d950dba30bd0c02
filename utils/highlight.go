package utils

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// languageByExtension maps file extensions to chroma lexer names.
var languageByExtension = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".go":    "go",
	".rs":    "rust",
	".java":  "java",
	".cs":    "csharp",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".rb":    "ruby",
	".php":   "php",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".swift": "swift",
	".scala": "scala",
	".lua":   "lua",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
	".sql":   "sql",
	".html":  "html",
	".htm":   "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".xml":   "xml",
	".md":    "markdown",
	".mdx":   "markdown",
}

// DetectLanguageFromPath returns the chroma lexer name for a file path,
// defaulting to plain text.
func DetectLanguageFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if language, ok := languageByExtension[ext]; ok {
		return language
	}
	return "text"
}

// HighlightCode renders code with terminal syntax highlighting.
func HighlightCode(w io.Writer, code string, language string, theme string) error {
	return quick.Highlight(w, code, language, "terminal256", theme)
}
