// Package memory provides in-process implementations of the storage ports.
// It backs local development (STORAGE_DRIVER=memory) and scenario tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

type applicationKey struct {
	campaignID string
	userID     string
}

type membershipKey struct {
	clubID string
	userID string
}

// Store keeps campaigns, applications and memberships in maps guarded by a
// single mutex. Values are copied in and out so callers never share state
// with the store.
type Store struct {
	mu           sync.RWMutex
	campaigns    map[string]domain.Campaign
	applications map[string]domain.Application
	byApplicant  map[applicationKey]string
	memberships  map[membershipKey]domain.Membership
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		campaigns:    make(map[string]domain.Campaign),
		applications: make(map[string]domain.Application),
		byApplicant:  make(map[applicationKey]string),
		memberships:  make(map[membershipKey]domain.Membership),
	}
}

// Campaigns returns the store as a port.CampaignRepository.
func (s *Store) Campaigns() port.CampaignRepository { return campaignRepo{s} }

// Applications returns the store as a port.ApplicationRepository.
func (s *Store) Applications() port.ApplicationRepository { return applicationRepo{s} }

// Memberships returns the store as a port.MembershipStore.
func (s *Store) Memberships() port.MembershipStore { return membershipRepo{s} }

// Clubs returns the store as a port.ClubDirectory.
func (s *Store) Clubs() port.ClubDirectory { return membershipRepo{s} }

type campaignRepo struct{ s *Store }

func (r campaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.campaigns[c.ID] = cloneCampaign(*c)
	return nil
}

func (r campaignRepo) Get(_ context.Context, id string) (*domain.Campaign, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.NotFound("campaign", id)
	}
	c = cloneCampaign(c)
	return &c, nil
}

func (r campaignRepo) Update(_ context.Context, c *domain.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.campaigns[c.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.NotFound("campaign", c.ID)
	}
	next := cloneCampaign(*c)
	next.Statistics = stored.Statistics
	r.s.campaigns[c.ID] = next
	return nil
}

func (r campaignRepo) Delete(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.DeletedAt != nil {
		return domain.NotFound("campaign", id)
	}
	c.DeletedAt = &at
	c.UpdatedAt = at
	r.s.campaigns[id] = c
	return nil
}

func (r campaignRepo) List(_ context.Context, q port.CampaignQuery) ([]domain.Campaign, int64, error) {
	r.s.mu.RLock()
	var matched []domain.Campaign
	for _, c := range r.s.campaigns {
		if c.DeletedAt != nil {
			continue
		}
		if q.ClubID != "" && c.ClubID != q.ClubID {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, c.Status) {
			continue
		}
		matched = append(matched, cloneCampaign(c))
	}
	r.s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Campaign) int {
		var c int
		switch q.Sort {
		case port.SortTitle:
			c = strings.Compare(a.Title, b.Title)
		case port.SortStartDate:
			c = a.StartDate.Compare(b.StartDate)
		case port.SortEndDate:
			c = a.EndDate.Compare(b.EndDate)
		default:
			c = b.CreatedAt.Compare(a.CreatedAt)
		}
		return cmp.Or(c, strings.Compare(a.ID, b.ID))
	})
	return paginate(matched, q.Page), int64(len(matched)), nil
}

func (r campaignRepo) SaveStatistics(_ context.Context, campaignID string, stats domain.Statistics) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[campaignID]
	if !ok {
		return domain.NotFound("campaign", campaignID)
	}
	c.Statistics = stats
	r.s.campaigns[campaignID] = c
	return nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, a *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := applicationKey{a.CampaignID, a.UserID}
	if _, dup := r.s.byApplicant[key]; dup {
		return domain.NewError(domain.KindDuplicate, "user %s already applied to campaign %s", a.UserID, a.CampaignID)
	}
	r.s.byApplicant[key] = a.ID
	r.s.applications[a.ID] = cloneApplication(*a)
	return nil
}

func (r applicationRepo) Get(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, domain.NotFound("application", id)
	}
	a = cloneApplication(a)
	return &a, nil
}

func (r applicationRepo) Exists(_ context.Context, campaignID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.byApplicant[applicationKey{campaignID, userID}]
	return ok, nil
}

func (r applicationRepo) Update(_ context.Context, a *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[a.ID]; !ok {
		return domain.NotFound("application", a.ID)
	}
	r.s.applications[a.ID] = cloneApplication(*a)
	return nil
}

func (r applicationRepo) Approve(_ context.Context, a *domain.Application, maxApproved *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.applications[a.ID]
	if !ok {
		return domain.NotFound("application", a.ID)
	}
	if _, err := stored.Status.Next(domain.ApplicationApprove); err != nil {
		return err
	}
	if maxApproved != nil {
		var approved int
		for _, other := range r.s.applications {
			if other.CampaignID == a.CampaignID && other.Status == domain.ApplicationApproved {
				approved++
			}
		}
		if approved >= *maxApproved {
			return domain.NewError(domain.KindCapacityExceeded,
				"campaign %s already approved %d of %d applications", a.CampaignID, approved, *maxApproved)
		}
	}
	r.s.applications[a.ID] = cloneApplication(*a)
	return nil
}

func (r applicationRepo) CountByStatus(_ context.Context, campaignID string) (map[domain.ApplicationStatus]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.ApplicationStatus]int64)
	for _, a := range r.s.applications {
		if a.CampaignID == campaignID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (r applicationRepo) List(_ context.Context, q port.ApplicationQuery) ([]domain.Application, int64, error) {
	r.s.mu.RLock()
	var matched []domain.Application
	for _, a := range r.s.applications {
		if q.CampaignID != "" && a.CampaignID != q.CampaignID {
			continue
		}
		if q.UserID != "" && a.UserID != q.UserID {
			continue
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		matched = append(matched, cloneApplication(a))
	}
	r.s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Application) int {
		return cmp.Or(b.SubmittedAt.Compare(a.SubmittedAt), strings.Compare(a.ID, b.ID))
	})
	return paginate(matched, q.Page), int64(len(matched)), nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) Provision(_ context.Context, m domain.Membership) (domain.Membership, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := membershipKey{m.ClubID, m.UserID}
	if existing, ok := r.s.memberships[key]; ok {
		return existing, false, nil
	}
	r.s.memberships[key] = m
	return m, true, nil
}

func (r membershipRepo) Get(_ context.Context, clubID, userID string) (*domain.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.memberships[membershipKey{clubID, userID}]
	if !ok {
		return nil, domain.NotFound("membership", clubID+"/"+userID)
	}
	return &m, nil
}

func (r membershipRepo) CanManage(_ context.Context, clubID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.memberships[membershipKey{clubID, userID}]
	return ok && m.Role.CanManage(), nil
}

func paginate[T any](items []T, p port.PageRequest) []T {
	if p.Limit <= 0 {
		return items
	}
	start := min(p.Offset(), len(items))
	end := start + min(p.Limit, len(items)-start)
	return items[start:end]
}

func cloneCampaign(c domain.Campaign) domain.Campaign {
	c.Requirements = slices.Clone(c.Requirements)
	c.Questions = slices.Clone(c.Questions)
	for i := range c.Questions {
		c.Questions[i].Options = slices.Clone(c.Questions[i].Options)
	}
	return c
}

func cloneApplication(a domain.Application) domain.Application {
	a.Answers = slices.Clone(a.Answers)
	for i := range a.Answers {
		a.Answers[i].Choices = slices.Clone(a.Answers[i].Choices)
	}
	return a
}
