package command

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hublink-go/internal/cli/connection"
	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/server/httpserver/handler"
)

var errMalformedToken = errors.New("invalid link: malformed token")

// LinkCommand returns the link subcommand group.
func LinkCommand() *cli.Command {
	return &cli.Command{
		Name:  "link",
		Usage: "Account link operations",
		Subcommands: []*cli.Command{
			{
				Name:   "request",
				Usage:  "Issue a link token for a chat user",
				Flags:  []cli.Flag{userFlag()},
				Action: linkRequest,
			},
			{
				Name:  "verify",
				Usage: "Redeem a token and link its owner to a hub account",
				Flags: []cli.Flag{
					tokenFlag(),
					&cli.StringFlag{
						Name:     "hub-user",
						Usage:    "Hub account id",
						Required: true,
					},
				},
				Action: linkVerify,
			},
			{
				Name:   "consume",
				Usage:  "Redeem a token without recording a link",
				Flags:  []cli.Flag{tokenFlag()},
				Action: linkConsume,
			},
			{
				Name:  "show",
				Usage: "Show a link by chat user or by hub account",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "Chat user id",
					},
					&cli.StringFlag{
						Name:  "hub-user",
						Usage: "Hub account id",
					},
				},
				Action: linkShow,
			},
		},
	}
}

func userFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Chat user id",
		Required: true,
	}
}

func tokenFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "token",
		Aliases:  []string{"t"},
		Usage:    "Link token value",
		Required: true,
	}
}

func linkRequest(c *cli.Context) error {
	user, err := parseUser(c)
	if err != nil {
		return err
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := client.IssueLinkToken(ctx, int64(user))
	if err != nil {
		return describeLinkError(err)
	}

	return render(c, result, func(w io.Writer) {
		fmt.Fprintf(w, "Link URL:   %s\n", result.LinkURL)
		fmt.Fprintf(w, "Expires at: %s (in %s)\n",
			result.ExpiresAt.Local().Format(time.RFC3339),
			time.Until(result.ExpiresAt).Round(time.Second))
	})
}

func linkVerify(c *cli.Context) error {
	value := c.String("token")
	if !domain.ValidateLinkTokenFormat(value) {
		return errMalformedToken
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := client.CreateLink(ctx, value, c.String("hub-user"))
	if err != nil {
		return describeLinkError(err)
	}

	return render(c, result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Linked chat user %d to hub account %s\n", result.ChatUserID, result.HubUserID)
	})
}

func linkConsume(c *cli.Context) error {
	value := c.String("token")
	if !domain.ValidateLinkTokenFormat(value) {
		return errMalformedToken
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	owner, err := client.ConsumeLinkToken(ctx, value)
	if err != nil {
		return describeLinkError(err)
	}

	return render(c, map[string]int64{"chat_user_id": owner}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Token consumed, owner is chat user %d\n", owner)
	})
}

func linkShow(c *cli.Context) error {
	hubUser := c.String("hub-user")
	if c.IsSet("user") == (hubUser != "") {
		return errors.New("exactly one of --user or --hub-user is required")
	}
	var user domain.ChatUserID
	if hubUser == "" {
		var err error
		if user, err = parseUser(c); err != nil {
			return err
		}
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var result *handler.LinkResponse
	if hubUser != "" {
		result, err = client.GetLinkByHubUser(ctx, hubUser)
	} else {
		result, err = client.GetLink(ctx, int64(user))
	}
	if err != nil {
		return describeLinkError(err)
	}
	return render(c, result, nil)
}

func parseUser(c *cli.Context) (domain.ChatUserID, error) {
	id := domain.ChatUserID(c.Int64("user"))
	if !id.Valid() {
		return 0, fmt.Errorf("--user must be a positive chat user id, got %d", id)
	}
	return id, nil
}

// describeLinkError turns the two token failure kinds into the messages a
// user acts on; other errors pass through.
func describeLinkError(err error) error {
	var apiErr *connection.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case domain.ErrLinkTokenInvalid.Code:
		return fmt.Errorf("invalid link: %w", err)
	case domain.ErrLinkTokenExpired.Code:
		return fmt.Errorf("link expired, please request a new one: %w", err)
	case domain.ErrAccountNotFound.Code:
		return fmt.Errorf("no linked account: %w", err)
	}
	return err
}
