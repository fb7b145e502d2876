package token

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest computes the BLAKE2b-256 digest of a token, hex encoded.
func Digest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Equal compares two secrets in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
