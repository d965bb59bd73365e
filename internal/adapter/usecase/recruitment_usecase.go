package usecase

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	lockStripes     = 64
	recordAttempts  = 2
)

// RecruitmentUseCase provides business logic for recruitment campaigns and
// their applications. It orchestrates the domain state machines and the
// repositories to implement port.RecruitmentUseCase.
type RecruitmentUseCase struct {
	campaigns    port.CampaignRepository
	applications port.ApplicationRepository
	provisioner  port.Provisioner
	clubs        port.ClubDirectory
	notifier     port.Notifier
	logger       *slog.Logger

	now   func() time.Time
	newID func() string

	defaultRole     domain.Role
	defaultPageSize int
	maxPageSize     int

	// locks serialises writers per entity id within this process. The
	// store's atomic updates and unique constraints cover other processes.
	locks [lockStripes]sync.Mutex
}

var _ port.RecruitmentUseCase = (*RecruitmentUseCase)(nil)

// Option customises a RecruitmentUseCase.
type Option func(*RecruitmentUseCase)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(u *RecruitmentUseCase) { u.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(newID func() string) Option {
	return func(u *RecruitmentUseCase) { u.newID = newID }
}

// WithPaging sets the default and maximum page sizes for listings.
func WithPaging(defaultSize, maxSize int) Option {
	return func(u *RecruitmentUseCase) {
		if defaultSize > 0 {
			u.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			u.maxPageSize = maxSize
		}
	}
}

// WithDefaultRole sets the role granted on approval when the reviewer does
// not choose one.
func WithDefaultRole(r domain.Role) Option {
	return func(u *RecruitmentUseCase) {
		if r.Assignable() {
			u.defaultRole = r
		}
	}
}

// NewRecruitmentUseCase creates a usecase over the given ports. Notifier
// and club directory may be nil.
func NewRecruitmentUseCase(
	campaigns port.CampaignRepository,
	applications port.ApplicationRepository,
	provisioner port.Provisioner,
	clubs port.ClubDirectory,
	notifier port.Notifier,
	logger *slog.Logger,
	opts ...Option,
) *RecruitmentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	u := &RecruitmentUseCase{
		campaigns:       campaigns,
		applications:    applications,
		provisioner:     provisioner,
		clubs:           clubs,
		notifier:        notifier,
		logger:          logger,
		now:             time.Now,
		newID:           uuid.NewString,
		defaultRole:     domain.RoleMember,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// lock acquires the stripe guarding id and returns its release func.
func (u *RecruitmentUseCase) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &u.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

func (u *RecruitmentUseCase) clock() time.Time {
	return u.now().UTC()
}

// recompute rebuilds the campaign's statistics from a direct count. Failures
// are logged and never mask the caller's outcome.
func (u *RecruitmentUseCase) recompute(ctx context.Context, campaignID string) (domain.Statistics, error) {
	counts, err := u.applications.CountByStatus(ctx, campaignID)
	if err != nil {
		u.logger.Warn("count applications failed",
			slog.String("campaign_id", campaignID), slog.Any("error", err))
		return domain.Statistics{}, err
	}
	stats := domain.NewStatistics(counts, u.clock())
	if err = u.campaigns.SaveStatistics(ctx, campaignID, stats); err != nil {
		u.logger.Warn("save campaign statistics failed",
			slog.String("campaign_id", campaignID), slog.Any("error", err))
		return stats, err
	}
	return stats, nil
}

// notify dispatches e without letting delivery failures escape.
func (u *RecruitmentUseCase) notify(ctx context.Context, e domain.Event) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, e); err != nil {
		u.logger.Warn("notification dispatch failed",
			slog.String("event_type", string(e.Type)),
			slog.String("campaign_id", e.CampaignID),
			slog.Any("error", err))
	}
}

func (u *RecruitmentUseCase) normalizePage(p port.PageRequest) port.PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = u.defaultPageSize
	}
	if p.Limit > u.maxPageSize {
		p.Limit = u.maxPageSize
	}
	return p
}
