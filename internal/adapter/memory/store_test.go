package memory

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

var t0 = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func seedCampaign(t *testing.T, s *Store, id, title string, created time.Time) {
	t.Helper()
	require.NoError(t, s.Campaigns().Create(context.Background(), &domain.Campaign{
		ID:        id,
		ClubID:    "club",
		Title:     title,
		Status:    domain.CampaignStatusPublished,
		StartDate: created,
		EndDate:   created.Add(time.Hour),
		CreatedAt: created,
	}))
}

func TestCampaigns_CopiesAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedCampaign(t, s, "c1", "one", t0)

	c, err := s.Campaigns().Get(ctx, "c1")
	require.NoError(t, err)
	c.Title = "changed"
	again, _ := s.Campaigns().Get(ctx, "c1")
	assert.Equal(t, "one", again.Title)

	require.NoError(t, s.Campaigns().SaveStatistics(ctx, "c1", domain.Statistics{Total: 4, LastUpdated: t0}))
	require.NoError(t, s.Campaigns().Update(ctx, c))
	again, _ = s.Campaigns().Get(ctx, "c1")
	assert.Equal(t, "changed", again.Title)
	assert.Equal(t, int64(4), again.Statistics.Total, "update keeps statistics")

	require.NoError(t, s.Campaigns().Delete(ctx, "c1", t0))
	_, err = s.Campaigns().Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Campaigns().Delete(ctx, "c1", t0), domain.ErrNotFound)
}

func TestCampaigns_ListSortAndPage(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedCampaign(t, s, "c1", "bravo", t0)
	seedCampaign(t, s, "c2", "alpha", t0.Add(time.Hour))
	seedCampaign(t, s, "c3", "charlie", t0.Add(2*time.Hour))

	items, total, err := s.Campaigns().List(ctx, port.CampaignQuery{Page: port.PageRequest{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"c3", "c2"}, campaignIDs(items))

	items, _, err = s.Campaigns().List(ctx, port.CampaignQuery{Sort: port.SortTitle, Page: port.PageRequest{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c3"}, campaignIDs(items))

	items, total, err = s.Campaigns().List(ctx, port.CampaignQuery{Statuses: []domain.CampaignStatus{domain.CampaignStatusDraft}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestPaginate_HugePages(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Empty(t, paginate(items, port.PageRequest{Page: math.MaxInt, Limit: 10}))
	assert.Empty(t, paginate(items, port.PageRequest{Page: 2, Limit: math.MaxInt}))
	assert.Equal(t, items, paginate(items, port.PageRequest{Page: 1, Limit: math.MaxInt}))
	assert.Equal(t, []int{3}, paginate(items, port.PageRequest{Page: 2, Limit: 2}))
}

func campaignIDs(cs []domain.Campaign) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

func TestApplications_UniqueAndApproveCap(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	apps := s.Applications()

	for i, user := range []string{"u1", "u2", "u3"} {
		require.NoError(t, apps.Create(ctx, &domain.Application{
			ID: "a" + user, CampaignID: "c1", UserID: user,
			Status: domain.ApplicationPending, SubmittedAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}
	err := apps.Create(ctx, &domain.Application{ID: "other", CampaignID: "c1", UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	limit := 2
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		capped   int
	)
	for _, id := range []string{"au1", "au2", "au3"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := apps.Get(ctx, id)
			if !assert.NoError(t, err) {
				return
			}
			a.Status = domain.ApplicationApproved
			err = apps.Approve(ctx, a, &limit)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case domain.KindOf(err) == domain.KindCapacityExceeded:
				capped++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, accepted)
	assert.Equal(t, 1, capped)

	counts, err := apps.CountByStatus(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.ApplicationApproved])
	assert.Equal(t, int64(1), counts[domain.ApplicationPending])

	items, total, err := apps.List(ctx, port.ApplicationQuery{CampaignID: "c1", Status: domain.ApplicationPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestApplications_ApproveRejectsStaleStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	apps := s.Applications()
	require.NoError(t, apps.Create(ctx, &domain.Application{ID: "a1", CampaignID: "c1", UserID: "u1", Status: domain.ApplicationWithdrawn}))

	err := apps.Approve(ctx, &domain.Application{ID: "a1", CampaignID: "c1", Status: domain.ApplicationApproved}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMemberships_ProvisionIsCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m, created, err := s.Memberships().Provision(ctx, domain.Membership{ID: "m1", ClubID: "club", UserID: "u1", Role: domain.RoleOrganizer})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.Memberships().Provision(ctx, domain.Membership{ID: "m2", ClubID: "club", UserID: "u1", Role: domain.RoleMember})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m, again)

	ok, err := s.Clubs().CanManage(ctx, "club", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = s.Clubs().CanManage(ctx, "club", "stranger")
	assert.False(t, ok)

	_, err = s.Memberships().Get(ctx, "club", "stranger")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
