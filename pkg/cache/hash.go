package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocHash computes the content hash of a layout document's raw bytes, used
// as the document component of artifact keys. Returns the full 64-character
// hex SHA-256 so distinct documents can never share a key.
func DocHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
