package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// handleCreateCampaign creates a draft campaign for the club in the path.
// Only club managers may create campaigns.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clubID := chi.URLParam(r, "clubID")
	if err := h.requireManager(ctx, clubID); err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	draft, err := req.draft(clubID, identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.CreateCampaign(ctx, draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newCampaignResponse(*c, h.now()))
}

// handleListClubCampaigns lists a club's campaigns in every status. It
// accepts `status` (comma separated), `sort`, `page` and `limit`.
func (h *Handler) handleListClubCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clubID := chi.URLParam(r, "clubID")
	if err := h.requireManager(ctx, clubID); err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := campaignQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q.ClubID = clubID
	page, err := h.svc.ListClubCampaigns(ctx, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.campaignPage(page))
}

// handleListPublicCampaigns lists campaigns visible to applicants,
// optionally filtered by `club_id`.
func (h *Handler) handleListPublicCampaigns(w http.ResponseWriter, r *http.Request) {
	q, err := campaignQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q.ClubID = r.URL.Query().Get("club_id")
	page, err := h.svc.ListPublicCampaigns(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.campaignPage(page))
}

// handleGetCampaign returns a campaign. Drafts are visible to club managers
// only; everyone else gets 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.svc.GetCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if c.Status == domain.CampaignStatusDraft {
		ok, err := h.isManager(ctx, c.ClubID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if !ok {
			h.writeError(w, r, domain.NotFound("campaign", c.ID))
			return
		}
	}
	h.writeJSON(w, http.StatusOK, newCampaignResponse(*c, h.now()))
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.managedCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateCampaignRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err = h.svc.UpdateCampaign(ctx, c.ID, identityFrom(ctx).UserID, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newCampaignResponse(*c, h.now()))
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.managedCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.DeleteCampaign(ctx, c.ID, identityFrom(ctx).UserID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCampaignAction drives the campaign lifecycle: publish, pause,
// resume or complete.
func (h *Handler) handleCampaignAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var transition func(context.Context, string, string) (*domain.Campaign, error)
	switch chi.URLParam(r, "action") {
	case "publish":
		transition = h.svc.PublishCampaign
	case "pause":
		transition = h.svc.PauseCampaign
	case "resume":
		transition = h.svc.ResumeCampaign
	case "complete":
		transition = h.svc.CompleteCampaign
	default:
		writeMessage(w, http.StatusNotFound, "unknown campaign action")
		return
	}
	c, err := h.managedCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err = transition(ctx, c.ID, identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newCampaignResponse(*c, h.now()))
}

func (h *Handler) campaignPage(p port.Page[domain.Campaign]) pageResponse[campaignResponse] {
	now := h.now()
	return newPageResponse(p, func(c domain.Campaign) campaignResponse {
		return newCampaignResponse(c, now)
	})
}

func campaignQuery(r *http.Request) (port.CampaignQuery, error) {
	page, err := pageRequest(r)
	if err != nil {
		return port.CampaignQuery{}, err
	}
	q := port.CampaignQuery{
		Sort: port.CampaignSort(r.URL.Query().Get("sort")),
		Page: page,
	}
	if s := r.URL.Query().Get("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			q.Statuses = append(q.Statuses, domain.CampaignStatus(strings.TrimSpace(part)))
		}
	}
	return q, nil
}
