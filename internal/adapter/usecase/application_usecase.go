package usecase

import (
	"context"
	"log/slog"
	"strings"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// SubmitApplication runs the submission guard, rejects a second
// application by the same user, validates the answers and stores a pending
// application.
func (u *RecruitmentUseCase) SubmitApplication(ctx context.Context, s domain.Submission) (*domain.Application, error) {
	c, err := u.campaigns.Get(ctx, s.CampaignID)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	if err = c.AcceptsSubmissions(now); err != nil {
		return nil, err
	}

	exists, err := u.applications.Exists(ctx, c.ID, s.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewError(domain.KindDuplicate, "user %s already applied to campaign %s", s.UserID, c.ID)
	}

	app, err := domain.NewApplication(*c, s, u.newID(), now)
	if err != nil {
		return nil, err
	}
	// A concurrent submission can slip past Exists; the store's unique
	// constraint reports it as a duplicate.
	if err = u.applications.Create(ctx, &app); err != nil {
		return nil, err
	}
	u.logger.Info("application submitted",
		slog.String("application_id", app.ID),
		slog.String("campaign_id", app.CampaignID),
		slog.String("user_id", app.UserID))

	_, _ = u.recompute(ctx, app.CampaignID)
	u.notify(ctx, domain.ApplicationEvent(domain.EventApplicationSubmitted, app, app.UserID, now))
	return &app, nil
}

// UpdateApplication replaces the answers of the caller's own pending
// application. The campaign must still accept submissions.
func (u *RecruitmentUseCase) UpdateApplication(ctx context.Context, id, userID string, answers []domain.AnswerInput, message *string) (*domain.Application, error) {
	defer u.lock(id)()

	app, err := u.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.OwnedBy(userID) {
		return nil, domain.NewError(domain.KindForbidden, "application %s belongs to another user", id)
	}
	now := u.clock()
	if err = app.Transition(domain.ApplicationEdit, now); err != nil {
		return nil, err
	}
	c, err := u.campaigns.Get(ctx, app.CampaignID)
	if err != nil {
		return nil, err
	}
	if err = c.AcceptsSubmissions(now); err != nil {
		return nil, err
	}
	if app.Answers, err = domain.BuildAnswers(c.Questions, answers); err != nil {
		return nil, err
	}
	if message != nil {
		app.Message = strings.TrimSpace(*message)
	}
	if err = u.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication returns the application if callerID submitted it or
// manages the owning club.
func (u *RecruitmentUseCase) GetApplication(ctx context.Context, id, callerID string) (*domain.Application, error) {
	app, err := u.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.OwnedBy(callerID) {
		return app, nil
	}
	if u.clubs != nil {
		ok, err := u.clubs.CanManage(ctx, app.ClubID, callerID)
		if err != nil {
			return nil, err
		}
		if ok {
			return app, nil
		}
	}
	return nil, domain.NewError(domain.KindForbidden, "application %s is not visible to user %s", id, callerID)
}

// StartReview moves a pending application to under review.
func (u *RecruitmentUseCase) StartReview(ctx context.Context, id, reviewerID string) (*domain.Application, error) {
	defer u.lock(id)()

	app, err := u.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = app.Transition(domain.ApplicationStartReview, u.clock()); err != nil {
		return nil, err
	}
	app.ReviewedBy = reviewerID
	if err = u.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	_, _ = u.recompute(ctx, app.CampaignID)
	return app, nil
}

// ReviewApplication approves or rejects an application.
func (u *RecruitmentUseCase) ReviewApplication(ctx context.Context, d domain.ReviewDecision) (*domain.Application, error) {
	action, err := d.Action()
	if err != nil {
		return nil, err
	}
	if d.Role == "" {
		d.Role = u.defaultRole
	}
	if action == domain.ApplicationApprove && !d.Role.Assignable() {
		return nil, domain.ValidationError("role cannot be assigned through recruitment", "role")
	}

	defer u.lock(d.ApplicationID)()

	app, err := u.applications.Get(ctx, d.ApplicationID)
	if err != nil {
		return nil, err
	}
	c, err := u.campaigns.Get(ctx, app.CampaignID)
	if err != nil {
		return nil, err
	}
	if action == domain.ApplicationApprove {
		return u.approve(ctx, c, app, d)
	}
	return u.reject(ctx, app, d)
}

func (u *RecruitmentUseCase) reject(ctx context.Context, app *domain.Application, d domain.ReviewDecision) (*domain.Application, error) {
	now := u.clock()
	if err := app.Reject(d, now); err != nil {
		return nil, err
	}
	if err := u.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	u.logger.Info("application rejected",
		slog.String("application_id", app.ID), slog.String("reviewer_id", d.ReviewerID))
	_, _ = u.recompute(ctx, app.CampaignID)
	u.notify(ctx, domain.ApplicationEvent(domain.EventApplicationRejected, *app, d.ReviewerID, now))
	return app, nil
}

// approve enforces the soft capacity, stores the approval and provisions
// the membership. If provisioning fails the approval is compensated back to
// under review so callers never observe an approved application without a
// membership. An application left approved with an unrecorded membership
// is completed by reviewing it again.
func (u *RecruitmentUseCase) approve(ctx context.Context, c *domain.Campaign, app *domain.Application, d domain.ReviewDecision) (*domain.Application, error) {
	now := u.clock()
	approved := *app
	if app.Status != domain.ApplicationApproved || app.MembershipCreated {
		if err := approved.Approve(d, now); err != nil {
			return nil, err
		}
		if err := u.applications.Approve(ctx, &approved, c.MaxApplications); err != nil {
			return nil, err
		}
	}

	m, err := u.provisioner.Provision(ctx, approved.ClubID, approved.UserID, approved.AssignedRole)
	if err != nil {
		u.logger.Error("membership provisioning failed, reverting approval",
			slog.String("application_id", approved.ID),
			slog.String("club_id", approved.ClubID),
			slog.String("user_id", approved.UserID),
			slog.Any("error", err))
		if rerr := approved.RevertApproval(u.clock()); rerr == nil {
			if rerr = u.applications.Update(ctx, &approved); rerr != nil {
				u.logger.Error("approval revert failed",
					slog.String("application_id", approved.ID), slog.Any("error", rerr))
			}
		}
		_, _ = u.recompute(ctx, approved.CampaignID)
		if domain.KindOf(err) != domain.KindProvisioning {
			err = domain.WrapError(domain.KindProvisioning, err, "provision membership")
		}
		return nil, err
	}

	approved.MembershipCreated = true
	approved.MembershipID = m.ID
	approved.AssignedRole = m.Role
	if err = u.recordMembership(ctx, &approved); err != nil {
		u.logger.Error("membership provisioned but not recorded on application",
			slog.String("application_id", approved.ID),
			slog.String("membership_id", m.ID),
			slog.Any("error", err))
		_, _ = u.recompute(ctx, approved.CampaignID)
		return nil, domain.WrapError(domain.KindProvisioning, err,
			"membership %s provisioned but not recorded on application %s", m.ID, approved.ID)
	}
	u.logger.Info("application approved",
		slog.String("application_id", approved.ID),
		slog.String("membership_id", m.ID),
		slog.String("reviewer_id", d.ReviewerID))

	_, _ = u.recompute(ctx, approved.CampaignID)
	u.notify(ctx, domain.ApplicationEvent(domain.EventApplicationApproved, approved, d.ReviewerID, now))
	return &approved, nil
}

// recordMembership persists the membership fields of an approved
// application, retrying once.
func (u *RecruitmentUseCase) recordMembership(ctx context.Context, app *domain.Application) error {
	var err error
	for attempt := 1; attempt <= recordAttempts; attempt++ {
		if err = u.applications.Update(ctx, app); err == nil {
			return nil
		}
		u.logger.Warn("record membership on application failed",
			slog.String("application_id", app.ID),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
	}
	return err
}

// ReopenApplication returns a rejected application to pending. This is an
// administrative override outside the normal review flow.
func (u *RecruitmentUseCase) ReopenApplication(ctx context.Context, id, managerID string) (*domain.Application, error) {
	defer u.lock(id)()

	app, err := u.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = app.Reopen(u.clock()); err != nil {
		return nil, err
	}
	if err = u.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	u.logger.Warn("rejected application reopened",
		slog.String("application_id", id), slog.String("manager_id", managerID))
	_, _ = u.recompute(ctx, app.CampaignID)
	return app, nil
}

// WithdrawApplication lets the applicant withdraw their own application.
func (u *RecruitmentUseCase) WithdrawApplication(ctx context.Context, id, userID string) (*domain.Application, error) {
	defer u.lock(id)()

	app, err := u.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.OwnedBy(userID) {
		return nil, domain.NewError(domain.KindForbidden, "only the applicant can withdraw application %s", id)
	}
	now := u.clock()
	if err = app.Transition(domain.ApplicationWithdraw, now); err != nil {
		return nil, err
	}
	if err = u.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	_, _ = u.recompute(ctx, app.CampaignID)
	u.notify(ctx, domain.ApplicationEvent(domain.EventApplicationWithdrawn, *app, userID, now))
	return app, nil
}

// ListApplications lists a campaign's applications, newest first.
func (u *RecruitmentUseCase) ListApplications(ctx context.Context, q port.ApplicationQuery) (port.Page[domain.Application], error) {
	if q.CampaignID == "" {
		return port.Page[domain.Application]{}, domain.ValidationError("campaign id is required", "campaign_id")
	}
	if _, err := u.campaigns.Get(ctx, q.CampaignID); err != nil {
		return port.Page[domain.Application]{}, err
	}
	q.UserID = ""
	return u.listApplications(ctx, q)
}

// ListMyApplications lists the applications submitted by q.UserID.
func (u *RecruitmentUseCase) ListMyApplications(ctx context.Context, q port.ApplicationQuery) (port.Page[domain.Application], error) {
	if q.UserID == "" {
		return port.Page[domain.Application]{}, domain.ValidationError("user id is required", "user_id")
	}
	q.CampaignID = ""
	return u.listApplications(ctx, q)
}

func (u *RecruitmentUseCase) listApplications(ctx context.Context, q port.ApplicationQuery) (port.Page[domain.Application], error) {
	if q.Status != "" && !q.Status.Valid() {
		return port.Page[domain.Application]{}, domain.ValidationError("unknown application status", string(q.Status))
	}
	q.Page = u.normalizePage(q.Page)
	items, total, err := u.applications.List(ctx, q)
	if err != nil {
		return port.Page[domain.Application]{}, err
	}
	return port.Page[domain.Application]{Items: items, Pagination: port.NewPagination(q.Page, total)}, nil
}
