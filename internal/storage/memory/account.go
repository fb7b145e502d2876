package memory

import (
	"context"
	"sync"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

// AccountStore keeps linked accounts in memory.
//
// Links are one-to-one: linking a chat user drops its previous hub user,
// and linking a hub user drops the chat user that held it before.
type AccountStore struct {
	mu     sync.RWMutex
	byChat map[domain.ChatUserID]*domain.LinkedAccount
	byHub  map[domain.HubUserID]domain.ChatUserID
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byChat: make(map[domain.ChatUserID]*domain.LinkedAccount),
		byHub:  make(map[domain.HubUserID]domain.ChatUserID),
	}
}

// Link records the account, replacing any conflicting link on either side.
// It returns the link previously held by the chat user, or nil.
func (s *AccountStore) Link(_ context.Context, account *domain.LinkedAccount) *domain.LinkedAccount {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.byChat[account.ChatUserID]
	if prev != nil {
		delete(s.byHub, prev.HubUserID)
	}
	if other, ok := s.byHub[account.HubUserID]; ok && other != account.ChatUserID {
		delete(s.byChat, other)
	}

	clone := *account
	s.byChat[account.ChatUserID] = &clone
	s.byHub[account.HubUserID] = account.ChatUserID

	if prev == nil {
		return nil
	}
	out := *prev
	return &out
}

// ByChatUser returns the account linked to a chat user.
func (s *AccountStore) ByChatUser(_ context.Context, id domain.ChatUserID) (*domain.LinkedAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.byChat[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *acct
	return &out, nil
}

// ByHubUser returns the account linked to a hub user.
func (s *AccountStore) ByHubUser(_ context.Context, id domain.HubUserID) (*domain.LinkedAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chatID, ok := s.byHub[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *s.byChat[chatID]
	return &out, nil
}

// Count returns the number of linked accounts.
func (s *AccountStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byChat)
}
