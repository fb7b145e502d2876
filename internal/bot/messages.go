package bot

import (
	"fmt"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

// User-facing texts for the link command.
const (
	msgDMSent = "I've sent you a DM with a verification link to link your Discord account to StudentHub!"

	msgDMDisabled = "I couldn't send you a DM. Please enable direct messages from server members and try again.\n" +
		"Server Settings > Privacy Settings > Allow direct messages from server members"

	msgFailure = "I'm sorry, I encountered an error while processing your request. Please try again later."
)

// LinkDM is the direct message carrying the link URL.
func LinkDM(linkURL string) string {
	return fmt.Sprintf("Click the link below to link your Discord account to your StudentHub profile:\n\n"+
		"%s\n\n"+
		"This link will expire in %d minutes and can only be used once.",
		linkURL, int(domain.LinkTokenTTL.Minutes()))
}

// LinkedMessage confirms a completed link to the chat user.
func LinkedMessage(a *domain.LinkedAccount) string {
	return fmt.Sprintf("Your Discord account has been successfully linked to your StudentHub profile!\n\n"+
		"StudentHub User ID: %s\n"+
		"Discord User ID: %s\n\n"+
		"You can now use all features that require account linking.",
		a.HubUserID, a.ChatUserID)
}
