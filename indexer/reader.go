package indexer

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// binarySniffLen is how many leading bytes are checked for null bytes.
const binarySniffLen = 8192

// legacyEncodings is the ordered fallback chain tried after UTF-8.
var legacyEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	simplifiedchinese.GB18030,
	charmap.Windows1252,
}

// DetectAndRead reads a file and decodes it as text. It returns ok=false for
// binary or undecodable content; that is an expected outcome, not an error.
func DetectAndRead(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return DecodeText(raw)
}

// DecodeText decodes raw bytes using UTF-8 first, then the legacy encoding
// chain; the first clean decode wins.
func DecodeText(raw []byte) (string, bool) {
	sniff := raw
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0x00) >= 0 {
		return "", false
	}

	if utf8.Valid(raw) {
		return string(raw), true
	}

	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		// The x/text decoders substitute U+FFFD instead of failing; treat a
		// substitution as a failed decode so the next encoding gets a try.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return string(decoded), true
	}

	return "", false
}

// SanitizeContent normalizes CRLF and bare CR line terminators to LF and
// strips any residual null bytes.
func SanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.ReplaceAll(content, "\x00", "")
}
