package port

import (
	"context"
	"time"

	"club-recruitment/internal/core/domain"
)

// CampaignRepository defines persistence for campaigns. It is an outbound
// port in hexagonal architecture. Lookups of missing or soft-deleted
// campaigns return a domain.KindNotFound error.
type CampaignRepository interface {
	// Create stores a new campaign.
	Create(ctx context.Context, c *domain.Campaign) error
	// Get returns a campaign by id.
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	// Update persists every mutable field of c, including status.
	Update(ctx context.Context, c *domain.Campaign) error
	// Delete soft-deletes a campaign.
	Delete(ctx context.Context, id string, at time.Time) error
	// List returns campaigns matching q.
	List(ctx context.Context, q CampaignQuery) ([]domain.Campaign, int64, error)
	// SaveStatistics replaces the cached statistics projection.
	SaveStatistics(ctx context.Context, campaignID string, stats domain.Statistics) error
}

// ApplicationRepository defines persistence for applications.
// Implementations must enforce uniqueness of (campaign id, user id) and
// report violations as domain.KindDuplicate.
type ApplicationRepository interface {
	// Create stores a new application.
	Create(ctx context.Context, a *domain.Application) error
	// Get returns an application by id.
	Get(ctx context.Context, id string) (*domain.Application, error)
	// Exists reports whether userID already applied to campaignID, in any
	// status.
	Exists(ctx context.Context, campaignID, userID string) (bool, error)
	// Update persists status, review fields and answers of a.
	Update(ctx context.Context, a *domain.Application) error
	// Approve persists an approved application only if fewer than
	// maxApproved applications of the campaign are already approved. The
	// count and the write happen atomically. A nil maxApproved means no cap.
	Approve(ctx context.Context, a *domain.Application, maxApproved *int) error
	// CountByStatus counts the campaign's applications per status.
	CountByStatus(ctx context.Context, campaignID string) (map[domain.ApplicationStatus]int64, error)
	// List returns applications matching q, newest first.
	List(ctx context.Context, q ApplicationQuery) ([]domain.Application, int64, error)
}

// MembershipStore is the external membership store. Provision has
// create-if-absent semantics keyed on (club id, user id).
type MembershipStore interface {
	// Provision returns the existing membership for m.ClubID and m.UserID,
	// or stores m. created reports which of the two happened.
	Provision(ctx context.Context, m domain.Membership) (membership domain.Membership, created bool, err error)
	// Get returns the membership of userID in clubID.
	Get(ctx context.Context, clubID, userID string) (*domain.Membership, error)
}

// ClubDirectory answers authorization questions about clubs.
type ClubDirectory interface {
	// CanManage reports whether userID may manage clubID's campaigns.
	CanManage(ctx context.Context, clubID, userID string) (bool, error)
}

// Notifier dispatches recruitment events. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, e domain.Event) error
}
