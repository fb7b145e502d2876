// Package token provides token generation and digest utilities.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// MinLength is the smallest accepted token length in bytes.
const MinLength = 16

// ErrTooShort is returned when a token shorter than MinLength is requested.
var ErrTooShort = errors.New("token: length below minimum of 16 bytes")

// GeneratePrefixed generates a token of length random bytes behind prefix.
//
// The body is Base64 RawURL encoded for safe URL transmission.
func GeneratePrefixed(prefix string, length int) (string, error) {
	if length < MinLength {
		return "", ErrTooShort
	}
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString(bytes), nil
}
