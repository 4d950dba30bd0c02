package indexer

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestDecodeText_UTF8(t *testing.T) {
	text, ok := DecodeText([]byte("hello\nworld"))

	require.True(t, ok)
	assert.Equal(t, "hello\nworld", text)
}

func TestDecodeText_NullByteMeansBinary(t *testing.T) {
	_, ok := DecodeText([]byte("ELF\x00\x01\x02"))

	assert.False(t, ok)
}

func TestDecodeText_GBKFallback(t *testing.T) {
	// "你好" encoded as GBK is invalid UTF-8
	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("你好 world"))
	require.NoError(t, err)
	require.False(t, utf8.Valid(raw))

	text, ok := DecodeText(raw)

	require.True(t, ok)
	assert.Equal(t, "你好 world", text)
}

func TestDecodeText_Windows1252Fallback(t *testing.T) {
	// 0xE9 is "é" in Windows-1252 and invalid standalone UTF-8
	raw := []byte{'c', 'a', 'f', 0xE9}

	text, ok := DecodeText(raw)

	require.True(t, ok)
	assert.Contains(t, text, "caf")
}

func TestDetectAndRead_MissingFile(t *testing.T) {
	_, ok := DetectAndRead(filepath.Join(t.TempDir(), "missing.txt"))

	assert.False(t, ok)
}

func TestDetectAndRead_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	text, ok := DetectAndRead(path)

	require.True(t, ok)
	assert.Equal(t, "content", text)
}

func TestSanitizeContent_NormalizesLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", SanitizeContent("a\r\nb\rc"))
}

func TestSanitizeContent_StripsNullBytes(t *testing.T) {
	assert.Equal(t, "ab", SanitizeContent("a\x00b"))
}
