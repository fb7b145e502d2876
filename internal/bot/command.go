package bot

import (
	"context"
	"errors"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// ErrDirectMessagesDisabled is returned by a Messenger when the user does
// not accept direct messages.
var ErrDirectMessagesDisabled = errors.New("bot: direct messages disabled by user")

// Messenger sends direct messages to chat users.
type Messenger interface {
	SendDirect(ctx context.Context, user domain.ChatUserID, text string) error
}

// Responder answers in the channel a command came from.
type Responder interface {
	Reply(ctx context.Context, text string, ephemeral bool) error
}

// LinkRequester issues a link for a chat user and returns its URL.
type LinkRequester interface {
	RequestLinkURL(ctx context.Context, user domain.ChatUserID) (string, error)
}

// LinkRequesterFunc adapts a function to LinkRequester.
type LinkRequesterFunc func(ctx context.Context, user domain.ChatUserID) (string, error)

// RequestLinkURL implements LinkRequester.
func (f LinkRequesterFunc) RequestLinkURL(ctx context.Context, user domain.ChatUserID) (string, error) {
	return f(ctx, user)
}

// Invocation is one use of the link command.
type Invocation struct {
	User domain.ChatUserID

	// InGuild is set when the command was used in a server channel rather
	// than a direct message.
	InGuild bool

	// Slash is set for slash commands. Their replies are ephemeral and
	// every invocation gets one.
	Slash bool

	Responder Responder
}

// LinkCommand handles the link command.
type LinkCommand struct {
	links     LinkRequester
	messenger Messenger
	logger    logger.Logger
}

// NewLinkCommand creates a LinkCommand. l may be nil.
func NewLinkCommand(links LinkRequester, messenger Messenger, l logger.Logger) *LinkCommand {
	if l == nil {
		l = logger.Default()
	}
	return &LinkCommand{links: links, messenger: messenger, logger: l}
}

// Handle issues a link for the invoking user and sends it by direct message.
// Failures are reported to the user. The returned error is a failed reply.
func (c *LinkCommand) Handle(ctx context.Context, inv Invocation) error {
	c.logger.Info("received link request", "chat_user_id", inv.User, "slash", inv.Slash)

	linkURL, err := c.links.RequestLinkURL(ctx, inv.User)
	if err != nil {
		c.logger.Error("error processing link request", "chat_user_id", inv.User, "error", err)
		return c.reply(ctx, inv, msgFailure)
	}

	if err := c.messenger.SendDirect(ctx, inv.User, LinkDM(linkURL)); err != nil {
		if errors.Is(err, ErrDirectMessagesDisabled) {
			c.logger.Info("direct messages disabled", "chat_user_id", inv.User)
			return c.reply(ctx, inv, msgDMDisabled)
		}
		c.logger.Error("error sending link message", "chat_user_id", inv.User, "error", err)
		return c.reply(ctx, inv, msgFailure)
	}

	if inv.Slash || inv.InGuild {
		return c.reply(ctx, inv, msgDMSent)
	}
	return nil
}

func (c *LinkCommand) reply(ctx context.Context, inv Invocation, text string) error {
	if inv.Responder == nil {
		return nil
	}
	return inv.Responder.Reply(ctx, text, inv.Slash)
}
