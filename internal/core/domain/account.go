package domain

import (
	"strings"
	"time"
)

// maxHubUserIDLength bounds hub user ids accepted from the login proxy.
const maxHubUserIDLength = 128

// HubUserID identifies an account on the community hub.
type HubUserID string

// NormalizeHubUserID trims the id and checks it is usable.
func NormalizeHubUserID(s string) (HubUserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissingArgument.WithDetails("hub user id is required")
	}
	if len(s) > maxHubUserIDLength {
		return "", ErrInvalidArgument.WithDetails("hub user id too long")
	}
	return HubUserID(s), nil
}

// LinkedAccount associates a chat user with a hub account.
type LinkedAccount struct {
	ChatUserID ChatUserID `json:"chat_user_id"`
	HubUserID  HubUserID  `json:"hub_user_id"`
	LinkedAt   time.Time  `json:"linked_at"`
}
