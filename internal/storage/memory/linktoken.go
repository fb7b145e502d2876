package memory

import (
	"context"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/pkg/cmap"
)

// LinkTokenStore holds pending link tokens keyed by token digest.
type LinkTokenStore struct {
	entries *cmap.Map[string, domain.LinkEntry]
}

// NewLinkTokenStore creates an empty link token store.
func NewLinkTokenStore() *LinkTokenStore {
	return &LinkTokenStore{
		entries: cmap.New[string, domain.LinkEntry](),
	}
}

// Insert stores entry under digest unless the digest is already present.
// It reports whether the entry was stored; an existing entry is never replaced.
func (s *LinkTokenStore) Insert(_ context.Context, digest string, entry domain.LinkEntry) bool {
	return s.entries.SetIfAbsent(digest, entry)
}

// Take removes and returns the entry stored under digest.
// Lookup and removal happen under one shard lock, so concurrent callers
// for the same digest see exactly one success.
func (s *LinkTokenStore) Take(_ context.Context, digest string) (domain.LinkEntry, bool) {
	return s.entries.Pop(digest)
}

// DeleteExpired removes every entry whose deadline is before now.
func (s *LinkTokenStore) DeleteExpired(_ context.Context, now time.Time) int {
	return s.entries.DeleteFunc(func(_ string, e domain.LinkEntry) bool {
		return e.ExpiredAt(now)
	})
}

// Count returns the number of stored entries, expired or not.
func (s *LinkTokenStore) Count() int {
	return s.entries.Count()
}
