package domain

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

const (
	// LinkTokenTTL is how long an issued link token stays consumable.
	LinkTokenTTL = 30 * time.Minute

	// SweepInterval is how often expired link tokens are removed.
	SweepInterval = 10 * time.Minute

	// LinkTokenPrefix marks link token values (sensitive, masked in logs).
	LinkTokenPrefix = "lnk_"

	// LinkTokenBytes is the number of random bytes behind the prefix.
	LinkTokenBytes = 32

	// LinkTokenBodyLength is the Base64 RawURL encoded length (32 bytes -> 43 chars).
	LinkTokenBodyLength = 43

	// LinkTokenLength is the total token length (prefix + body).
	LinkTokenLength = len(LinkTokenPrefix) + LinkTokenBodyLength
)

// ChatUserID is the numeric identifier of a chat platform user.
type ChatUserID int64

// String returns the decimal form of the id.
func (id ChatUserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseChatUserID parses a decimal chat user id. Zero and negative ids are rejected.
func ParseChatUserID(s string) (ChatUserID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument.WithDetails("chat user id must be numeric").WithCause(err)
	}
	id := ChatUserID(n)
	if !id.Valid() {
		return 0, ErrInvalidArgument.WithDetails("chat user id must be positive")
	}
	return id, nil
}

// Valid reports whether the id can own a link token.
func (id ChatUserID) Valid() bool {
	return id > 0
}

// LinkToken is an issued link token as returned to the caller.
// The plaintext Value leaves the registry exactly once, on issue.
type LinkToken struct {
	Value     string     `json:"token"`
	Owner     ChatUserID `json:"chat_user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Entry returns the stored form of the token, without the plaintext value.
func (t *LinkToken) Entry() LinkEntry {
	return LinkEntry{Owner: t.Owner, ExpiresAt: t.ExpiresAt}
}

// LinkEntry is what the registry keeps per token, keyed by token digest.
type LinkEntry struct {
	Owner     ChatUserID
	ExpiresAt time.Time
}

// ExpiredAt reports whether the entry is past its deadline at now.
// An entry whose deadline equals now is still live.
func (e LinkEntry) ExpiredAt(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// ValidateLinkTokenFormat checks if a string has the shape of an issued link token.
// A valid token has:
// - Prefix: lnk_
// - Body: 43 characters of Base64 RawURL encoded data
func ValidateLinkTokenFormat(value string) bool {
	if len(value) != LinkTokenLength {
		return false
	}
	if !strings.HasPrefix(value, LinkTokenPrefix) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(value[len(LinkTokenPrefix):])
	return err == nil
}
