package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SecretsEqual compares a presented secret against the expected one in
// constant time. Both values are digested first so that the comparison does
// not leak the expected length. An empty expected secret never matches.
func SecretsEqual(presented, expected string) bool {
	if expected == "" {
		return false
	}

	a := sha256.Sum256([]byte(presented))
	b := sha256.Sum256([]byte(expected))

	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
