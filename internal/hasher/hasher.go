// Package hasher computes the content address of uploaded images.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length of a hex-encoded digest.
const Size = sha256.Size * 2

// SumBytes returns the lower-case hex SHA-256 digest of data.
func SumBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Valid reports whether s looks like a digest produced by this package.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
