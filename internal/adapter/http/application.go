package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// handleSubmitApplication submits the caller's application to a campaign.
// Answers are a list of {question_id, answer} where answer is a string or,
// for checkbox questions, an array of strings.
func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req submitApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	caller := identityFrom(ctx)
	app, err := h.svc.SubmitApplication(ctx, domain.Submission{
		CampaignID: chi.URLParam(r, "campaignID"),
		UserID:     caller.UserID,
		UserEmail:  caller.Email,
		Answers:    answerInputs(req.Answers),
		Message:    req.Message,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newApplicationResponse(*app))
}

// handleListApplications lists a campaign's applications for its managers,
// optionally filtered by `status`.
func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.managedCampaign(ctx, chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := applicationQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q.CampaignID = c.ID
	page, err := h.svc.ListApplications(ctx, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPageResponse(page, newApplicationResponse))
}

func (h *Handler) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := applicationQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q.UserID = identityFrom(ctx).UserID
	page, err := h.svc.ListMyApplications(ctx, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPageResponse(page, newApplicationResponse))
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app, err := h.svc.GetApplication(ctx, chi.URLParam(r, "applicationID"), identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

// handleUpdateApplication replaces the answers of the caller's pending
// application.
func (h *Handler) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req updateApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err := h.svc.UpdateApplication(ctx, chi.URLParam(r, "applicationID"), identityFrom(ctx).UserID,
		answerInputs(req.Answers), req.Message)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

func (h *Handler) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app, err := h.svc.WithdrawApplication(ctx, chi.URLParam(r, "applicationID"), identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

func (h *Handler) handleStartReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app, err := h.managedApplication(ctx, chi.URLParam(r, "applicationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err = h.svc.StartReview(ctx, app.ID, identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

// handleReviewApplication approves or rejects an application. A failed
// membership provisioning answers 503 and leaves the application under
// review.
func (h *Handler) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app, err := h.managedApplication(ctx, chi.URLParam(r, "applicationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req reviewRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err = h.svc.ReviewApplication(ctx, domain.ReviewDecision{
		ApplicationID:   app.ID,
		ReviewerID:      identityFrom(ctx).UserID,
		Status:          req.Status,
		Notes:           req.Notes,
		RejectionReason: req.RejectionReason,
		Role:            req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

func (h *Handler) handleReopenApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app, err := h.managedApplication(ctx, chi.URLParam(r, "applicationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err = h.svc.ReopenApplication(ctx, app.ID, identityFrom(ctx).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newApplicationResponse(*app))
}

func applicationQuery(r *http.Request) (port.ApplicationQuery, error) {
	page, err := pageRequest(r)
	if err != nil {
		return port.ApplicationQuery{}, err
	}
	return port.ApplicationQuery{
		Status: domain.ApplicationStatus(r.URL.Query().Get("status")),
		Page:   page,
	}, nil
}
