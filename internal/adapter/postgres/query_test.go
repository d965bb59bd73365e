package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.String())

	w.add("deleted_at IS NULL")
	w.add("club_id = ?", "club-1")
	w.add("status = ANY(?)", []string{"published", "paused"})

	assert.Equal(t, "WHERE deleted_at IS NULL AND club_id = $1 AND status = ANY($2)", w.String())
	assert.Equal(t, "LIMIT $3 OFFSET $4", w.limitOffset(port.PageRequest{Page: 3, Limit: 20}))
	assert.Equal(t, []any{"club-1", []string{"published", "paused"}, 20, 40}, w.args)
}

func TestWhereBuilder_NoLimit(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.limitOffset(port.PageRequest{}))
	assert.Empty(t, w.args)
}

func TestCampaignOrder(t *testing.T) {
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", campaignOrder(""))
	assert.Equal(t, "ORDER BY title ASC, id ASC", campaignOrder(port.SortTitle))
	assert.Equal(t, "ORDER BY end_date ASC, id ASC", campaignOrder(port.SortEndDate))
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", campaignOrder("title; DROP TABLE campaigns"))
}

func TestErrorTranslation(t *testing.T) {
	err := notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows), "campaign", "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := errors.New("conn closed")
	assert.Equal(t, other, notFound(other, "campaign", "c1"))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: applicationCampaignUserKey})
	assert.True(t, isUniqueViolation(dup, applicationCampaignUserKey))
	assert.False(t, isUniqueViolation(dup, "memberships_club_user_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: applicationCampaignUserKey}, applicationCampaignUserKey))
	assert.False(t, isUniqueViolation(nil, applicationCampaignUserKey))
}
