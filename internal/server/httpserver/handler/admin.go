package handler

import (
	"net/http"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// AdminStatus handles GET /admin/v1/status/summary.
func (h *Handler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, StatusSummaryResponse{
		Status:        "running",
		Version:       version(),
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
		StoredTokens:  h.registry.Len(),
		TokenTTL:      int64(domain.LinkTokenTTL.Seconds()),
		SweepInterval: int64(domain.SweepInterval.Seconds()),
	})
}

// AdminGC handles POST /admin/v1/gc/trigger by running one sweep now.
func (h *Handler) AdminGC(w http.ResponseWriter, r *http.Request) {
	removed := h.registry.Sweep(r.Context())
	logger.L(r.Context()).Info("manual sweep triggered", "removed", removed)

	h.writeJSON(w, r, http.StatusOK, GCResponse{
		CleanedCount: removed,
		Remaining:    h.registry.Len(),
		TriggeredAt:  h.now().UTC(),
	})
}
