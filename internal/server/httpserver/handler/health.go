package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
)

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready. It reports 503 once Drain has been called.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.draining.Load() {
		h.writeError(w, r, http.StatusServiceUnavailable,
			domain.ErrServiceUnavailable.Code, domain.ErrServiceUnavailable.Message+": shutting down")
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// Drain marks the server as going away so load balancers stop routing to it.
func (h *Handler) Drain() {
	h.draining.Store(true)
}
