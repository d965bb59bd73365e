package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"club-recruitment/internal/adapter/memory"
	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port/mocks"
)

func TestMembershipProvisioner_Idempotent(t *testing.T) {
	ctx := context.Background()
	p := NewMembershipProvisioner(memory.NewStore().Memberships(), discardLogger())

	first, err := p.Provision(ctx, "club", "u1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, first.Role)

	second, err := p.Provision(ctx, "club", "u1", domain.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMembershipProvisioner_WrapsStoreErrors(t *testing.T) {
	store := mocks.NewMockMembershipStore(t)
	p := NewMembershipProvisioner(store, discardLogger())
	p.now = func() time.Time { return time.Date(2025, 2, 1, 0, 0, 0, 0, time.FixedZone("X", 3600)) }
	p.newID = func() string { return "m-1" }

	cause := errors.New("timeout")
	store.EXPECT().
		Provision(mock.Anything, domain.Membership{
			ID:       "m-1",
			ClubID:   "club",
			UserID:   "u1",
			Role:     domain.RoleOrganizer,
			JoinedAt: time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC),
		}).
		Return(domain.Membership{}, false, cause)

	_, err := p.Provision(context.Background(), "club", "u1", domain.RoleOrganizer)
	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.ErrorIs(t, err, cause)
}
