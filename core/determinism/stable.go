// Package determinism provides primitives for reproducible output:
// content hashes for loaded datasets, stable string ordering for
// dropdown values and money display.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// SortStrings sorts strings in place by byte order, which for UTF-8 is
// code point order
func SortStrings(s []string) {
	sort.Strings(s)
}
