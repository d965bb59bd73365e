package usecase

import (
	"context"
	"log/slog"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// CreateCampaign validates the draft and stores it in draft status.
func (u *RecruitmentUseCase) CreateCampaign(ctx context.Context, d domain.CampaignDraft) (*domain.Campaign, error) {
	now := u.clock()
	c, err := domain.NewCampaign(d, u.newID(), now)
	if err != nil {
		return nil, err
	}
	if err = u.campaigns.Create(ctx, &c); err != nil {
		return nil, err
	}
	u.logger.Info("campaign created",
		slog.String("campaign_id", c.ID), slog.String("club_id", c.ClubID))
	u.notify(ctx, domain.CampaignEvent(domain.EventCampaignCreated, c, d.CreatedBy, now))
	return &c, nil
}

// GetCampaign returns a campaign by id.
func (u *RecruitmentUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return u.campaigns.Get(ctx, id)
}

// UpdateCampaign applies a partial update. Questions and capacity become
// read-only once any application exists.
func (u *RecruitmentUseCase) UpdateCampaign(ctx context.Context, id, actorID string, p domain.CampaignPatch) (*domain.Campaign, error) {
	defer u.lock(id)()

	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	hasApplications := false
	if p.Questions != nil || p.MaxApplications != nil {
		if hasApplications, err = u.hasApplications(ctx, id); err != nil {
			return nil, err
		}
	}
	now := u.clock()
	if err = c.ApplyPatch(p, hasApplications, now); err != nil {
		return nil, err
	}
	if err = u.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	u.notify(ctx, domain.CampaignEvent(domain.EventCampaignUpdated, *c, actorID, now))
	return c, nil
}

// DeleteCampaign soft-deletes a campaign. Campaigns that have received any
// application, withdrawn ones included, are kept.
func (u *RecruitmentUseCase) DeleteCampaign(ctx context.Context, id, actorID string) error {
	defer u.lock(id)()

	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return err
	}
	has, err := u.hasApplications(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return domain.NewError(domain.KindInvalidTransition, "cannot delete campaigns with existing applications")
	}
	now := u.clock()
	if err = u.campaigns.Delete(ctx, id, now); err != nil {
		return err
	}
	u.logger.Info("campaign deleted", slog.String("campaign_id", id), slog.String("actor_id", actorID))
	u.notify(ctx, domain.CampaignEvent(domain.EventCampaignDeleted, *c, actorID, now))
	return nil
}

// PublishCampaign opens a draft campaign for submissions.
func (u *RecruitmentUseCase) PublishCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	return u.transitionCampaign(ctx, id, actorID, domain.CampaignPublish)
}

// PauseCampaign stops intake on a published campaign. Submitted
// applications stay reviewable.
func (u *RecruitmentUseCase) PauseCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	return u.transitionCampaign(ctx, id, actorID, domain.CampaignPause)
}

// ResumeCampaign reopens intake on a paused campaign.
func (u *RecruitmentUseCase) ResumeCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	return u.transitionCampaign(ctx, id, actorID, domain.CampaignResume)
}

// CompleteCampaign closes a campaign for good. Review of the backlog
// remains possible.
func (u *RecruitmentUseCase) CompleteCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error) {
	return u.transitionCampaign(ctx, id, actorID, domain.CampaignComplete)
}

func (u *RecruitmentUseCase) transitionCampaign(ctx context.Context, id, actorID string, action domain.CampaignAction) (*domain.Campaign, error) {
	defer u.lock(id)()

	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := c.Status
	now := u.clock()
	if err = c.Transition(action, now); err != nil {
		return nil, err
	}
	if err = u.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	u.logger.Info("campaign status changed",
		slog.String("campaign_id", id),
		slog.String("from", string(previous)),
		slog.String("to", string(c.Status)))

	eventType := domain.EventCampaignStatusChanged
	if action == domain.CampaignPublish {
		eventType = domain.EventCampaignPublished
	}
	e := domain.CampaignEvent(eventType, *c, actorID, now)
	e.PreviousStatus = string(previous)
	u.notify(ctx, e)
	return c, nil
}

// ListClubCampaigns lists a club's campaigns in any status.
func (u *RecruitmentUseCase) ListClubCampaigns(ctx context.Context, q port.CampaignQuery) (port.Page[domain.Campaign], error) {
	if q.ClubID == "" {
		return port.Page[domain.Campaign]{}, domain.ValidationError("club id is required", "club_id")
	}
	return u.listCampaigns(ctx, q)
}

// ListPublicCampaigns lists campaigns applicants may see: published,
// paused and completed ones, optionally restricted to one club.
func (u *RecruitmentUseCase) ListPublicCampaigns(ctx context.Context, q port.CampaignQuery) (port.Page[domain.Campaign], error) {
	q.Statuses = []domain.CampaignStatus{domain.CampaignStatusPublished, domain.CampaignStatusPaused, domain.CampaignStatusCompleted}
	return u.listCampaigns(ctx, q)
}

func (u *RecruitmentUseCase) listCampaigns(ctx context.Context, q port.CampaignQuery) (port.Page[domain.Campaign], error) {
	for _, s := range q.Statuses {
		if !s.Valid() {
			return port.Page[domain.Campaign]{}, domain.ValidationError("unknown campaign status", string(s))
		}
	}
	switch q.Sort {
	case port.SortCreatedAt, port.SortTitle, port.SortStartDate, port.SortEndDate:
	case "":
		q.Sort = port.SortCreatedAt
	default:
		return port.Page[domain.Campaign]{}, domain.ValidationError("unknown sort order", string(q.Sort))
	}
	q.Page = u.normalizePage(q.Page)
	items, total, err := u.campaigns.List(ctx, q)
	if err != nil {
		return port.Page[domain.Campaign]{}, err
	}
	return port.Page[domain.Campaign]{Items: items, Pagination: port.NewPagination(q.Page, total)}, nil
}

// GetStatistics recomputes the campaign's statistics and returns them.
func (u *RecruitmentUseCase) GetStatistics(ctx context.Context, campaignID string) (domain.Statistics, error) {
	if _, err := u.campaigns.Get(ctx, campaignID); err != nil {
		return domain.Statistics{}, err
	}
	return u.recompute(ctx, campaignID)
}

func (u *RecruitmentUseCase) hasApplications(ctx context.Context, campaignID string) (bool, error) {
	counts, err := u.applications.CountByStatus(ctx, campaignID)
	if err != nil {
		return false, err
	}
	for _, n := range counts {
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}
