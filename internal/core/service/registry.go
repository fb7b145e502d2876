package service

import (
	"context"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
	"github.com/yndnr/hublink-go/pkg/token"
)

// maxIssueAttempts bounds regeneration when a fresh token collides with a stored one.
const maxIssueAttempts = 5

// Rejection reasons reported to RegistryObserver.TokenRejected.
const (
	RejectInvalid = "invalid"
	RejectExpired = "expired"
)

// LinkTokenRepository defines the storage interface for pending link tokens.
// Entries are keyed by token digest.
type LinkTokenRepository interface {
	// Insert stores the entry unless the digest exists; it never overwrites.
	Insert(ctx context.Context, digest string, entry domain.LinkEntry) bool

	// Take atomically removes and returns the entry for digest.
	Take(ctx context.Context, digest string) (domain.LinkEntry, bool)

	// DeleteExpired removes entries whose deadline is before now.
	DeleteExpired(ctx context.Context, now time.Time) int

	// Count returns the number of stored entries.
	Count() int
}

// RegistryObserver receives registry events, typically for metrics.
type RegistryObserver interface {
	TokenIssued()
	TokenConsumed()
	TokenRejected(reason string)
	TokensSwept(n int)
}

type nopObserver struct{}

func (nopObserver) TokenIssued()         {}
func (nopObserver) TokenConsumed()       {}
func (nopObserver) TokenRejected(string) {}
func (nopObserver) TokensSwept(int)      {}

// Generator produces a new token value.
type Generator func() (string, error)

func defaultGenerator() (string, error) {
	return token.GeneratePrefixed(domain.LinkTokenPrefix, domain.LinkTokenBytes)
}

// Registry owns the set of pending link tokens.
//
// A token is live from Issue until it is consumed or swept. There is no
// retained "used" state: a consumed token is simply gone.
type Registry struct {
	repo     LinkTokenRepository
	now      func() time.Time
	generate Generator
	observer RegistryObserver
	logger   logger.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock sets the time source used for deadlines.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// WithGenerator replaces the token generator.
func WithGenerator(g Generator) RegistryOption {
	return func(r *Registry) {
		r.generate = g
	}
}

// WithObserver sets the event observer.
func WithObserver(o RegistryObserver) RegistryOption {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates a registry backed by repo.
func NewRegistry(repo LinkTokenRepository, opts ...RegistryOption) *Registry {
	r := &Registry{
		repo:     repo,
		now:      time.Now,
		generate: defaultGenerator,
		observer: nopObserver{},
		logger:   logger.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Issue mints a token for owner, valid for domain.LinkTokenTTL.
//
// The returned LinkToken is the only place the plaintext value appears;
// the registry keeps its digest.
func (r *Registry) Issue(ctx context.Context, owner domain.ChatUserID) (*domain.LinkToken, error) {
	if !owner.Valid() {
		return nil, domain.ErrInvalidArgument.WithDetails("chat user id must be positive")
	}

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		value, err := r.generate()
		if err != nil {
			return nil, domain.ErrInternalServer.WithDetails("generate link token").WithCause(err)
		}

		tok := &domain.LinkToken{
			Value:     value,
			Owner:     owner,
			ExpiresAt: r.now().Add(domain.LinkTokenTTL),
		}
		if !r.repo.Insert(ctx, token.Digest(value), tok.Entry()) {
			r.logger.Warn("link token collision, regenerating", "attempt", attempt+1)
			continue
		}

		r.observer.TokenIssued()
		r.logger.Info("link token issued",
			"chat_user_id", owner,
			"expires_at", tok.ExpiresAt,
		)
		return tok, nil
	}

	return nil, domain.ErrInternalServer.WithDetails("link token collision retries exhausted")
}

// Consume redeems a token and returns its owner.
//
// The entry is removed whether it is live or expired. An unknown value
// yields ErrLinkTokenInvalid, a value found past its deadline yields
// ErrLinkTokenExpired. A token already removed by Sweep reports invalid.
func (r *Registry) Consume(ctx context.Context, value string) (domain.ChatUserID, error) {
	if value == "" {
		r.observer.TokenRejected(RejectInvalid)
		return 0, domain.ErrLinkTokenInvalid
	}

	entry, ok := r.repo.Take(ctx, token.Digest(value))
	if !ok {
		r.observer.TokenRejected(RejectInvalid)
		r.logger.Debug("link token rejected", "reason", RejectInvalid)
		return 0, domain.ErrLinkTokenInvalid
	}

	if entry.ExpiredAt(r.now()) {
		r.observer.TokenRejected(RejectExpired)
		r.logger.Info("link token rejected",
			"reason", RejectExpired,
			"chat_user_id", entry.Owner,
			"expired_at", entry.ExpiresAt,
		)
		return 0, domain.ErrLinkTokenExpired
	}

	r.observer.TokenConsumed()
	r.logger.Info("link token consumed", "chat_user_id", entry.Owner)
	return entry.Owner, nil
}

// Sweep removes every expired entry and returns how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	n := r.repo.DeleteExpired(ctx, r.now())
	r.observer.TokensSwept(n)
	return n
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (r *Registry) Len() int {
	return r.repo.Count()
}
