package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/core/service"
	"github.com/yndnr/hublink-go/internal/storage/memory"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

type sentDM struct {
	user domain.ChatUserID
	text string
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentDM
	err  error
}

func (m *fakeMessenger) SendDirect(_ context.Context, user domain.ChatUserID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentDM{user, text})
	return nil
}

type reply struct {
	text      string
	ephemeral bool
}

type fakeResponder struct {
	replies []reply
}

func (r *fakeResponder) Reply(_ context.Context, text string, ephemeral bool) error {
	r.replies = append(r.replies, reply{text, ephemeral})
	return nil
}

func newLinkService() *service.LinkService {
	reg := service.NewRegistry(memory.NewLinkTokenStore(), service.WithLogger(logger.Discard()))
	return service.NewLinkService(reg, memory.NewAccountStore(), &service.LinkServiceConfig{Logger: logger.Discard()})
}

func serviceRequester(svc *service.LinkService) LinkRequester {
	return LinkRequesterFunc(func(ctx context.Context, user domain.ChatUserID) (string, error) {
		req, err := svc.RequestLink(ctx, user)
		if err != nil {
			return "", err
		}
		return req.URL, nil
	})
}

func TestLinkCommand_GuildPrefixCommand(t *testing.T) {
	m := &fakeMessenger{}
	resp := &fakeResponder{}
	cmd := NewLinkCommand(serviceRequester(newLinkService()), m, logger.Discard())

	if err := cmd.Handle(context.Background(), Invocation{User: 42, InGuild: true, Responder: resp}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(m.sent) != 1 || m.sent[0].user != 42 {
		t.Fatalf("sent = %+v", m.sent)
	}
	dm := m.sent[0].text
	if !strings.Contains(dm, "https://studenthub.co/link-discord?token=lnk_") {
		t.Errorf("DM missing link: %q", dm)
	}
	if !strings.Contains(dm, "expire in 30 minutes and can only be used once") {
		t.Errorf("DM missing expiry notice: %q", dm)
	}
	if len(resp.replies) != 1 || resp.replies[0].text != msgDMSent || resp.replies[0].ephemeral {
		t.Errorf("replies = %+v", resp.replies)
	}
}

func TestLinkCommand_DirectMessageNoReply(t *testing.T) {
	m := &fakeMessenger{}
	resp := &fakeResponder{}
	cmd := NewLinkCommand(serviceRequester(newLinkService()), m, logger.Discard())

	cmd.Handle(context.Background(), Invocation{User: 42, Responder: resp})

	if len(m.sent) != 1 {
		t.Errorf("sent %d DMs, want 1", len(m.sent))
	}
	if len(resp.replies) != 0 {
		t.Errorf("unexpected replies in DM: %+v", resp.replies)
	}
}

func TestLinkCommand_SlashIsEphemeral(t *testing.T) {
	resp := &fakeResponder{}
	cmd := NewLinkCommand(serviceRequester(newLinkService()), &fakeMessenger{}, logger.Discard())

	cmd.Handle(context.Background(), Invocation{User: 42, Slash: true, Responder: resp})

	if len(resp.replies) != 1 || !resp.replies[0].ephemeral || resp.replies[0].text != msgDMSent {
		t.Errorf("replies = %+v", resp.replies)
	}
}

func TestLinkCommand_DMDisabled(t *testing.T) {
	resp := &fakeResponder{}
	m := &fakeMessenger{err: ErrDirectMessagesDisabled}
	cmd := NewLinkCommand(serviceRequester(newLinkService()), m, logger.Discard())

	cmd.Handle(context.Background(), Invocation{User: 42, InGuild: true, Responder: resp})

	if len(resp.replies) != 1 || resp.replies[0].text != msgDMDisabled {
		t.Errorf("replies = %+v", resp.replies)
	}
	if !strings.Contains(resp.replies[0].text, "Privacy Settings") {
		t.Error("hint missing privacy settings path")
	}
}

func TestLinkCommand_Failures(t *testing.T) {
	tests := []struct {
		name      string
		requester LinkRequester
		messenger *fakeMessenger
	}{
		{
			name: "issue fails",
			requester: LinkRequesterFunc(func(context.Context, domain.ChatUserID) (string, error) {
				return "", domain.ErrInternalServer
			}),
			messenger: &fakeMessenger{},
		},
		{
			name:      "send fails",
			requester: serviceRequester(newLinkService()),
			messenger: &fakeMessenger{err: errors.New("gateway down")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &fakeResponder{}
			cmd := NewLinkCommand(tt.requester, tt.messenger, logger.Discard())
			cmd.Handle(context.Background(), Invocation{User: 42, Slash: true, Responder: resp})

			if len(resp.replies) != 1 || resp.replies[0].text != msgFailure || !resp.replies[0].ephemeral {
				t.Errorf("replies = %+v", resp.replies)
			}
		})
	}
}

func TestLinkCommand_InvalidUser(t *testing.T) {
	resp := &fakeResponder{}
	cmd := NewLinkCommand(serviceRequester(newLinkService()), &fakeMessenger{}, logger.Discard())

	cmd.Handle(context.Background(), Invocation{User: 0, InGuild: true, Responder: resp})
	if len(resp.replies) != 1 || resp.replies[0].text != msgFailure {
		t.Errorf("replies = %+v", resp.replies)
	}
}

func TestNotifier(t *testing.T) {
	m := &fakeMessenger{}
	n := NewNotifier(m)

	acct := &domain.LinkedAccount{ChatUserID: 42, HubUserID: "student123", LinkedAt: time.Now()}
	if err := n.AccountLinked(context.Background(), acct); err != nil {
		t.Fatalf("AccountLinked: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0].user != 42 {
		t.Fatalf("sent = %+v", m.sent)
	}
	for _, want := range []string{"successfully linked", "StudentHub User ID: student123", "Discord User ID: 42"} {
		if !strings.Contains(m.sent[0].text, want) {
			t.Errorf("message missing %q: %q", want, m.sent[0].text)
		}
	}
}

func TestWebhookMessenger(t *testing.T) {
	var got WebhookMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		switch got.ChatUserID {
		case 403:
			w.WriteHeader(http.StatusForbidden)
		case 500:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	m := NewWebhookMessenger(srv.URL, "s3cret", nil)
	ctx := context.Background()

	if err := m.SendDirect(ctx, 42, "hello"); err != nil {
		t.Fatalf("SendDirect: %v", err)
	}
	if got.ChatUserID != 42 || got.Text != "hello" || auth != "Bearer s3cret" {
		t.Errorf("got = %+v auth = %q", got, auth)
	}

	if err := m.SendDirect(ctx, 403, "x"); !errors.Is(err, ErrDirectMessagesDisabled) {
		t.Errorf("403 error = %v, want ErrDirectMessagesDisabled", err)
	}
	if err := m.SendDirect(ctx, 500, "x"); err == nil || errors.Is(err, ErrDirectMessagesDisabled) {
		t.Errorf("500 error = %v", err)
	}
}

func TestNotifier_WiredIntoLinkService(t *testing.T) {
	m := &fakeMessenger{}
	reg := service.NewRegistry(memory.NewLinkTokenStore(), service.WithLogger(logger.Discard()))
	svc := service.NewLinkService(reg, memory.NewAccountStore(), &service.LinkServiceConfig{
		Notifier: NewNotifier(m),
		Logger:   logger.Discard(),
	})

	req, err := svc.RequestLink(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(context.Background(), req.Token, "student123"); err != nil {
		t.Fatal(err)
	}
	if len(m.sent) != 1 || !strings.Contains(m.sent[0].text, "student123") {
		t.Errorf("confirmation not sent: %+v", m.sent)
	}
}
