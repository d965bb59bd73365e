package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"club-recruitment/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the recruitment usecase, the
// club directory used to authorize manager operations, and a logger.
// Routes are registered on a chi.Router.
type Handler struct {
	svc    port.RecruitmentUseCase
	clubs  port.ClubDirectory
	logger *slog.Logger
	router chi.Router
	now    func() time.Time
}

// NewHandler creates a handler with all routes configured. Every route
// under /api/v1 requires the gateway identity headers.
func NewHandler(svc port.RecruitmentUseCase, clubs port.ClubDirectory, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, clubs: clubs, logger: logger, now: time.Now}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.identity)

		r.Route("/clubs/{clubID}/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListClubCampaigns)
		})

		r.Get("/campaigns", h.handleListPublicCampaigns)
		r.Route("/campaigns/{campaignID}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Patch("/", h.handleUpdateCampaign)
			r.Delete("/", h.handleDeleteCampaign)
			r.Post("/{action}", h.handleCampaignAction)
			r.Get("/statistics", h.handleCampaignStatistics)
			r.Post("/applications", h.handleSubmitApplication)
			r.Get("/applications", h.handleListApplications)
		})

		r.Get("/applications/mine", h.handleListMyApplications)
		r.Route("/applications/{applicationID}", func(r chi.Router) {
			r.Get("/", h.handleGetApplication)
			r.Put("/", h.handleUpdateApplication)
			r.Delete("/", h.handleWithdrawApplication)
			r.Post("/start-review", h.handleStartReview)
			r.Post("/review", h.handleReviewApplication)
			r.Post("/reopen", h.handleReopenApplication)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
