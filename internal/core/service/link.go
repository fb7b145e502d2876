package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// Link flow defaults.
const (
	DefaultBaseURL      = "https://studenthub.co"
	DefaultCallbackPath = "/link-discord"
)

// AccountRepository defines the storage interface for linked accounts.
type AccountRepository interface {
	// Link records the account and returns the chat user's previous link, if any.
	Link(ctx context.Context, account *domain.LinkedAccount) *domain.LinkedAccount

	// ByChatUser returns the account for a chat user.
	ByChatUser(ctx context.Context, id domain.ChatUserID) (*domain.LinkedAccount, error)

	// ByHubUser returns the account for a hub user.
	ByHubUser(ctx context.Context, id domain.HubUserID) (*domain.LinkedAccount, error)
}

// Notifier tells the chat user that their account was linked.
type Notifier interface {
	AccountLinked(ctx context.Context, account *domain.LinkedAccount) error
}

// LinkObserver receives linking events, typically for metrics.
type LinkObserver interface {
	AccountLinked()
}

// LinkServiceConfig holds configuration for LinkService.
type LinkServiceConfig struct {
	// BaseURL is the hub origin placed in link URLs.
	BaseURL string

	// CallbackPath is the path of the browser callback.
	CallbackPath string

	// Notifier is optional; nil disables notifications.
	Notifier Notifier

	// Observer is optional.
	Observer LinkObserver

	// Logger defaults to logger.Default().
	Logger logger.Logger
}

// DefaultLinkServiceConfig returns the default configuration.
func DefaultLinkServiceConfig() *LinkServiceConfig {
	return &LinkServiceConfig{
		BaseURL:      DefaultBaseURL,
		CallbackPath: DefaultCallbackPath,
	}
}

// LinkRequest is the result of RequestLink.
type LinkRequest struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

// LinkService implements the account linking flow.
type LinkService struct {
	registry *Registry
	accounts AccountRepository
	notifier Notifier
	observer LinkObserver
	logger   logger.Logger
	baseURL  string
	path     string
}

// NewLinkService creates a LinkService.
func NewLinkService(registry *Registry, accounts AccountRepository, cfg *LinkServiceConfig) *LinkService {
	if cfg == nil {
		cfg = DefaultLinkServiceConfig()
	}

	s := &LinkService{
		registry: registry,
		accounts: accounts,
		notifier: cfg.Notifier,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		path:     cfg.CallbackPath,
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.path == "" {
		s.path = DefaultCallbackPath
	}
	if !strings.HasPrefix(s.path, "/") {
		s.path = "/" + s.path
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}

	return s
}

// RequestLink issues a token for the chat user and builds the callback URL.
func (s *LinkService) RequestLink(ctx context.Context, chatUserID domain.ChatUserID) (*LinkRequest, error) {
	tok, err := s.registry.Issue(ctx, chatUserID)
	if err != nil {
		return nil, err
	}

	return &LinkRequest{
		Token:     tok.Value,
		URL:       s.LinkURL(tok.Value),
		ExpiresAt: tok.ExpiresAt,
	}, nil
}

// LinkURL returns the callback URL carrying value.
func (s *LinkService) LinkURL(value string) string {
	q := url.Values{}
	q.Set("token", value)
	return s.baseURL + s.path + "?" + q.Encode()
}

// Verify consumes the token and links its owner to hubUserID.
//
// The hub user is checked before the token is consumed, so a bad request
// does not burn a valid token. Notification failures are logged only.
func (s *LinkService) Verify(ctx context.Context, value, hubUserID string) (*domain.LinkedAccount, error) {
	hub, err := domain.NormalizeHubUserID(hubUserID)
	if err != nil {
		return nil, err
	}

	owner, err := s.registry.Consume(ctx, value)
	if err != nil {
		return nil, err
	}

	account := &domain.LinkedAccount{
		ChatUserID: owner,
		HubUserID:  hub,
		LinkedAt:   s.registry.now(),
	}
	if prev := s.accounts.Link(ctx, account); prev != nil && prev.HubUserID != hub {
		s.logger.Info("replaced previous account link",
			"chat_user_id", owner,
			"previous_hub_user_id", prev.HubUserID,
		)
	}
	if s.observer != nil {
		s.observer.AccountLinked()
	}

	s.logger.Info("linked chat user to hub user",
		"chat_user_id", owner,
		"hub_user_id", hub,
	)

	if s.notifier != nil {
		if err := s.notifier.AccountLinked(ctx, account); err != nil {
			s.logger.Warn("account link notification failed",
				"chat_user_id", owner,
				"error", err,
			)
		}
	}

	return account, nil
}

// HubUserFor returns the hub user linked to a chat user.
func (s *LinkService) HubUserFor(ctx context.Context, chatUserID domain.ChatUserID) (domain.HubUserID, error) {
	acct, err := s.accounts.ByChatUser(ctx, chatUserID)
	if err != nil {
		return "", err
	}
	return acct.HubUserID, nil
}

// ChatUserFor returns the chat user linked to a hub user.
func (s *LinkService) ChatUserFor(ctx context.Context, hubUserID domain.HubUserID) (domain.ChatUserID, error) {
	acct, err := s.accounts.ByHubUser(ctx, hubUserID)
	if err != nil {
		return 0, err
	}
	return acct.ChatUserID, nil
}

// Registry returns the underlying token registry.
func (s *LinkService) Registry() *Registry {
	return s.registry
}
