// internal/utils/crypto.go
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateFileHash compares data against a hex SHA-256 digest.
func ValidateFileHash(fileData []byte, expectedHash string) bool {
	return HashBytes(fileData) == expectedHash
}

// ETag formats a strong entity tag for a response body.
func ETag(data []byte) string {
	return `"` + HashBytes(data)[:32] + `"`
}
