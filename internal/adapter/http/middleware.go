package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"club-recruitment/internal/core/domain"
)

// Gateway identity headers. The gateway authenticates the caller; values
// are trusted as-is.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

type identityKey struct{}

// identity reads the gateway headers into the request context and rejects
// anonymous requests with 401.
func (h *Handler) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := domain.Identity{
			UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Email:  strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			Role:   strings.TrimSpace(r.Header.Get(HeaderUserRole)),
		}
		if id.Anonymous() {
			writeMessage(w, http.StatusUnauthorized, "missing user identity")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey{}).(domain.Identity)
	return id
}

// requireManager fails with a forbidden error unless the caller manages
// clubID.
func (h *Handler) requireManager(ctx context.Context, clubID string) error {
	ok, err := h.isManager(ctx, clubID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.KindForbidden, "only club managers can perform this action")
	}
	return nil
}

func (h *Handler) isManager(ctx context.Context, clubID string) (bool, error) {
	return h.clubs.CanManage(ctx, clubID, identityFrom(ctx).UserID)
}

// managedCampaign loads the campaign and checks the caller manages its club.
func (h *Handler) managedCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	c, err := h.svc.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err = h.requireManager(ctx, c.ClubID); err != nil {
		return nil, err
	}
	return c, nil
}

// managedApplication loads the application and checks the caller manages
// its club.
func (h *Handler) managedApplication(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := h.svc.GetApplication(ctx, applicationID, identityFrom(ctx).UserID)
	if err != nil {
		return nil, err
	}
	if err = h.requireManager(ctx, app.ClubID); err != nil {
		return nil, err
	}
	return app, nil
}
