package handler

import "time"

// Response is the standard API response envelope.
// Every JSON endpoint uses it; /metrics and the browser callback do not.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// IssueLinkTokenRequest is the request body for POST /api/v1/link-tokens.
type IssueLinkTokenRequest struct {
	ChatUserID int64 `json:"chat_user_id"`
}

// IssueLinkTokenResponse is the response body for POST /api/v1/link-tokens.
type IssueLinkTokenResponse struct {
	Token     string    `json:"token"`
	LinkURL   string    `json:"link_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConsumeLinkTokenRequest is the request body for POST /api/v1/link-tokens/consume.
type ConsumeLinkTokenRequest struct {
	Token string `json:"token"`
}

// ConsumeLinkTokenResponse is the response body for POST /api/v1/link-tokens/consume.
type ConsumeLinkTokenResponse struct {
	ChatUserID int64 `json:"chat_user_id"`
}

// CreateLinkRequest is the request body for POST /api/v1/links.
type CreateLinkRequest struct {
	Token     string `json:"token"`
	HubUserID string `json:"hub_user_id"`
}

// LinkResponse represents a linked account.
type LinkResponse struct {
	ChatUserID int64     `json:"chat_user_id"`
	HubUserID  string    `json:"hub_user_id"`
	LinkedAt   time.Time `json:"linked_at,omitempty"`
}

// StatusSummaryResponse is the response body for GET /admin/v1/status/summary.
type StatusSummaryResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	StoredTokens  int    `json:"stored_tokens"`
	TokenTTL      int64  `json:"token_ttl_seconds"`
	SweepInterval int64  `json:"sweep_interval_seconds"`
}

// GCResponse is the response body for POST /admin/v1/gc/trigger.
type GCResponse struct {
	CleanedCount int       `json:"cleaned_count"`
	Remaining    int       `json:"remaining"`
	TriggeredAt  time.Time `json:"triggered_at"`
}
