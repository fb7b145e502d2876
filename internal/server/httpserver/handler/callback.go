package handler

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// Callback page messages.
const (
	msgLinked      = "Your Discord account has been successfully linked!"
	msgNoToken     = "No verification token provided."
	msgInvalid     = "This link is invalid or has already been used."
	msgExpired     = "This link has expired. Please request a new one with the link command."
	msgSignIn      = "Please sign in to StudentHub to finish linking your Discord account."
	msgVerifyError = "An error occurred during verification."
)

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`))

type callbackView struct {
	Title   string
	Message string
}

// LinkCallback handles GET <callback_path>?token=<value>.
//
// The hub user comes from a header set by the login proxy. Without it the
// visitor is sent to the login page when one is configured, with the
// callback as the return address, and the token stays unconsumed.
func (h *Handler) LinkCallback(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("token")
	if value == "" {
		h.renderCallback(w, http.StatusBadRequest, "Verification failed", msgNoToken)
		return
	}

	hubUser := r.Header.Get(h.hubUserHeader)
	if hubUser == "" {
		if h.loginURL != "" {
			target, err := h.loginRedirect(r)
			if err == nil {
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			h.logger.Warn("invalid login url", "login_url", h.loginURL, "error", err)
		}
		logger.L(r.Context()).Debug("callback without hub user",
			"code", domain.ErrHubUserMissing.Code,
			"header", h.hubUserHeader,
		)
		w.Header().Set("X-Error-Code", domain.ErrHubUserMissing.Code)
		h.renderCallback(w, http.StatusUnauthorized, "Sign in required", msgSignIn)
		return
	}

	account, err := h.links.Verify(r.Context(), value, hubUser)
	switch {
	case err == nil:
		logger.L(r.Context()).Info("account linked via callback",
			"chat_user_id", account.ChatUserID,
			"hub_user_id", account.HubUserID,
		)
		h.renderCallback(w, http.StatusOK, "Account linked", msgLinked)
	case errors.Is(err, domain.ErrLinkTokenExpired):
		h.renderCallback(w, http.StatusGone, "Verification failed", msgExpired)
	case errors.Is(err, domain.ErrLinkTokenInvalid):
		h.renderCallback(w, http.StatusNotFound, "Verification failed", msgInvalid)
	case errors.Is(err, domain.ErrMissingArgument), errors.Is(err, domain.ErrInvalidArgument):
		h.renderCallback(w, http.StatusBadRequest, "Verification failed", msgVerifyError)
	default:
		logger.L(r.Context()).Error("callback verification failed", "error", err)
		h.renderCallback(w, http.StatusInternalServerError, "Verification failed", msgVerifyError)
	}
}

// loginRedirect adds next=<callback uri> to the login URL, keeping any
// query it already carries.
func (h *Handler) loginRedirect(r *http.Request) (string, error) {
	u, err := url.Parse(h.loginURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("next", r.URL.RequestURI())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (h *Handler) renderCallback(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := callbackPage.Execute(w, callbackView{Title: title, Message: message}); err != nil {
		h.logger.Error("failed to render callback page", "error", err)
	}
}
