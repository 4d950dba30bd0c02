package indexer

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBlob derives the content-address for a blob: the SHA-256 digest over
// the UTF-8 bytes of the label followed by the bytes of the content. The
// label includes any chunk suffix, so identical content under different
// labels still yields distinct names.
func HashBlob(label string, content string) string {
	h := sha256.New()
	h.Write([]byte(label))
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
