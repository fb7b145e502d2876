// Package token provides opaque token generation and digest utilities.
//
// Token Format:
//
//   - Optional caller prefix (hublink link tokens use "lnk_")
//   - Body: Base64 RawURL encoded random bytes (URL-safe, no padding)
//
// Digest Format:
//
//   - 64 characters of hex-encoded BLAKE2b-256
//
// Security:
//
//   - Uses crypto/rand for CSPRNG
//   - Secrets are compared in constant time
//   - Stores key entries by digest, never by plaintext
package token
