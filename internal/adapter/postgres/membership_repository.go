package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// MembershipRepository implements port.MembershipStore and
// port.ClubDirectory over the memberships table.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

var (
	_ port.MembershipStore = (*MembershipRepository)(nil)
	_ port.ClubDirectory   = (*MembershipRepository)(nil)
)

// NewMembershipRepository returns a new repository instance.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// Provision inserts m unless a membership for the same club and user
// exists, in which case the existing row is returned.
func (r *MembershipRepository) Provision(ctx context.Context, m domain.Membership) (domain.Membership, bool, error) {
	var out domain.Membership
	err := r.pool.QueryRow(ctx, `INSERT INTO memberships (id, club_id, user_id, role, joined_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (club_id, user_id) DO NOTHING
RETURNING id, club_id, user_id, role, joined_at`,
		m.ID, m.ClubID, m.UserID, m.Role, m.JoinedAt).
		Scan(&out.ID, &out.ClubID, &out.UserID, &out.Role, &out.JoinedAt)
	if err == nil {
		return out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Membership{}, false, err
	}
	existing, err := r.Get(ctx, m.ClubID, m.UserID)
	if err != nil {
		return domain.Membership{}, false, err
	}
	return *existing, false, nil
}

// Get returns the membership of userID in clubID.
func (r *MembershipRepository) Get(ctx context.Context, clubID, userID string) (*domain.Membership, error) {
	var m domain.Membership
	err := r.pool.QueryRow(ctx, `SELECT id, club_id, user_id, role, joined_at FROM memberships WHERE club_id = $1 AND user_id = $2`,
		clubID, userID).Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, notFound(err, "membership", clubID+"/"+userID)
	}
	return &m, nil
}

// CanManage reports whether userID is an admin or organizer of clubID.
func (r *MembershipRepository) CanManage(ctx context.Context, clubID, userID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (
    SELECT 1 FROM memberships WHERE club_id = $1 AND user_id = $2 AND role IN ($3, $4))`,
		clubID, userID, domain.RoleAdmin, domain.RoleOrganizer).Scan(&ok)
	return ok, err
}
