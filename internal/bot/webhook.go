package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookMessage is the JSON body posted by WebhookMessenger.
type WebhookMessage struct {
	ChatUserID int64  `json:"chat_user_id"`
	Text       string `json:"text"`
}

// WebhookMessenger delivers direct messages by POSTing them to a bot process.
// The bot answers 2xx when sent and 403 when the user refuses direct messages.
type WebhookMessenger struct {
	url    string
	secret string
	client *http.Client
}

// NewWebhookMessenger creates a messenger posting to url. secret, when set,
// is sent as a bearer token. client may be nil.
func NewWebhookMessenger(url, secret string, client *http.Client) *WebhookMessenger {
	if client == nil {
		client = &http.Client{Timeout: defaultWebhookTimeout}
	}
	return &WebhookMessenger{url: url, secret: secret, client: client}
}

// SendDirect implements Messenger.
func (m *WebhookMessenger) SendDirect(ctx context.Context, user domain.ChatUserID, text string) error {
	body, err := json.Marshal(WebhookMessage{ChatUserID: int64(user), Text: text})
	if err != nil {
		return fmt.Errorf("bot: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bot: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent("hublink-server"))
	if m.secret != "" {
		req.Header.Set("Authorization", "Bearer "+m.secret)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("bot: send message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return ErrDirectMessagesDisabled
	case resp.StatusCode >= 300:
		return fmt.Errorf("bot: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
