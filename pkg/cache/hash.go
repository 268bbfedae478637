package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 content hash of data as a 64-character hex
// string. It is used both for cache keys and for document integrity
// checks in the graph store.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
