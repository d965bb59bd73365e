package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleCampaignStatistics recomputes and returns the statistics of a
// campaign. Only club managers may read them.
func (h *Handler) handleCampaignStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.managedCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.svc.GetStatistics(ctx, c.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newStatisticsResponse(stats))
}
