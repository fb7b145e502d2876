package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

// IssueLinkToken handles POST /api/v1/link-tokens.
func (h *Handler) IssueLinkToken(w http.ResponseWriter, r *http.Request) {
	var req IssueLinkTokenRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	link, err := h.links.RequestLink(r.Context(), domain.ChatUserID(req.ChatUserID))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, IssueLinkTokenResponse{
		Token:     link.Token,
		LinkURL:   link.URL,
		ExpiresAt: link.ExpiresAt,
	})
}

// ConsumeLinkToken handles POST /api/v1/link-tokens/consume.
// It redeems the token without recording an account link.
func (h *Handler) ConsumeLinkToken(w http.ResponseWriter, r *http.Request) {
	var req ConsumeLinkTokenRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		h.handleServiceError(w, r, domain.ErrMissingArgument.WithDetails("token is required"))
		return
	}

	owner, err := h.registry.Consume(r.Context(), req.Token)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ConsumeLinkTokenResponse{ChatUserID: int64(owner)})
}

// CreateLink handles POST /api/v1/links: consume the token and link its
// owner to the given hub user.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		h.handleServiceError(w, r, domain.ErrMissingArgument.WithDetails("token is required"))
		return
	}

	account, err := h.links.Verify(r.Context(), req.Token, req.HubUserID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, toLinkResponse(account))
}

// GetLink handles GET /api/v1/links/{chat_user_id}.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseChatUserID(chi.URLParam(r, "chat_user_id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	hub, err := h.links.HubUserFor(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LinkResponse{ChatUserID: int64(id), HubUserID: string(hub)})
}

// GetLinkByHubUser handles GET /api/v1/hub-users/{hub_user_id}/link.
func (h *Handler) GetLinkByHubUser(w http.ResponseWriter, r *http.Request) {
	hub, err := domain.NormalizeHubUserID(chi.URLParam(r, "hub_user_id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	chat, err := h.links.ChatUserFor(r.Context(), hub)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LinkResponse{ChatUserID: int64(chat), HubUserID: string(hub)})
}

func toLinkResponse(a *domain.LinkedAccount) LinkResponse {
	return LinkResponse{
		ChatUserID: int64(a.ChatUserID),
		HubUserID:  string(a.HubUserID),
		LinkedAt:   a.LinkedAt,
	}
}
