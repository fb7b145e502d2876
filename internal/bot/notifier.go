package bot

import (
	"context"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

// Notifier sends LinkedMessage to the chat user of a new link.
// It satisfies service.Notifier.
type Notifier struct {
	messenger Messenger
}

// NewNotifier creates a Notifier over messenger.
func NewNotifier(messenger Messenger) *Notifier {
	return &Notifier{messenger: messenger}
}

// AccountLinked implements service.Notifier.
func (n *Notifier) AccountLinked(ctx context.Context, account *domain.LinkedAccount) error {
	return n.messenger.SendDirect(ctx, account.ChatUserID, LinkedMessage(account))
}
