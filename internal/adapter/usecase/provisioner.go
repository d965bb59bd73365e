package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// MembershipProvisioner converts approved applications into memberships
// through the external membership store.
type MembershipProvisioner struct {
	store  port.MembershipStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

var _ port.Provisioner = (*MembershipProvisioner)(nil)

// NewMembershipProvisioner returns a provisioner backed by store.
func NewMembershipProvisioner(store port.MembershipStore, logger *slog.Logger) *MembershipProvisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &MembershipProvisioner{store: store, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Provision creates a membership for userID in clubID, or returns the one
// that already exists. Store failures are reported as
// domain.KindProvisioning, which callers may retry.
func (p *MembershipProvisioner) Provision(ctx context.Context, clubID, userID string, role domain.Role) (domain.Membership, error) {
	if role == "" {
		role = domain.RoleMember
	}
	m, created, err := p.store.Provision(ctx, domain.Membership{
		ID:       p.newID(),
		ClubID:   clubID,
		UserID:   userID,
		Role:     role,
		JoinedAt: p.now().UTC(),
	})
	if err != nil {
		return domain.Membership{}, domain.WrapError(domain.KindProvisioning, err,
			"provision membership for user %s in club %s", userID, clubID)
	}
	if created {
		p.logger.Info("membership created",
			slog.String("membership_id", m.ID),
			slog.String("club_id", clubID),
			slog.String("user_id", userID),
			slog.String("role", string(m.Role)))
	} else {
		p.logger.Debug("membership already exists",
			slog.String("membership_id", m.ID),
			slog.String("club_id", clubID),
			slog.String("user_id", userID))
	}
	return m, nil
}
