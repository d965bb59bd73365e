package port

import (
	"context"

	"club-recruitment/internal/core/domain"
)

// RecruitmentUseCase defines the operations exposed by the recruitment
// workflow. This interface is the primary port into the application
// domain. Every method returns a *domain.Error for business failures.
//
// Manager operations assume the caller has already been authorized to act
// for the campaign's club.
type RecruitmentUseCase interface {
	// CreateCampaign validates the draft and stores it in draft status.
	CreateCampaign(ctx context.Context, d domain.CampaignDraft) (*domain.Campaign, error)

	// GetCampaign returns a campaign by id.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)

	// UpdateCampaign applies a partial update while the campaign is draft or
	// published.
	UpdateCampaign(ctx context.Context, id, actorID string, p domain.CampaignPatch) (*domain.Campaign, error)

	// DeleteCampaign soft-deletes a campaign that has no applications.
	DeleteCampaign(ctx context.Context, id, actorID string) error

	// PublishCampaign, PauseCampaign, ResumeCampaign and CompleteCampaign
	// drive the campaign lifecycle.
	PublishCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error)
	PauseCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error)
	ResumeCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error)
	CompleteCampaign(ctx context.Context, id, actorID string) (*domain.Campaign, error)

	// ListClubCampaigns lists a club's campaigns in any status.
	ListClubCampaigns(ctx context.Context, q CampaignQuery) (Page[domain.Campaign], error)

	// ListPublicCampaigns lists campaigns visible to applicants.
	ListPublicCampaigns(ctx context.Context, q CampaignQuery) (Page[domain.Campaign], error)

	// GetStatistics recomputes and returns a campaign's statistics.
	GetStatistics(ctx context.Context, campaignID string) (domain.Statistics, error)

	// SubmitApplication runs the submission guard and stores a pending
	// application.
	SubmitApplication(ctx context.Context, s domain.Submission) (*domain.Application, error)

	// UpdateApplication replaces the answers of the caller's own pending
	// application while the campaign still accepts submissions.
	UpdateApplication(ctx context.Context, id, userID string, answers []domain.AnswerInput, message *string) (*domain.Application, error)

	// GetApplication returns an application to its applicant or to a
	// manager of its club.
	GetApplication(ctx context.Context, id, callerID string) (*domain.Application, error)

	// StartReview moves a pending application to under review.
	StartReview(ctx context.Context, id, reviewerID string) (*domain.Application, error)

	// ReviewApplication approves or rejects an application. Approval
	// provisions a membership; on provisioning failure the approval is
	// reverted and a domain.KindProvisioning error returned.
	ReviewApplication(ctx context.Context, d domain.ReviewDecision) (*domain.Application, error)

	// ReopenApplication is the administrative override that moves a
	// rejected application back to pending.
	ReopenApplication(ctx context.Context, id, managerID string) (*domain.Application, error)

	// WithdrawApplication lets the applicant withdraw their own pending or
	// under-review application.
	WithdrawApplication(ctx context.Context, id, userID string) (*domain.Application, error)

	// ListApplications lists a campaign's applications, newest first.
	ListApplications(ctx context.Context, q ApplicationQuery) (Page[domain.Application], error)

	// ListMyApplications lists the caller's applications, newest first.
	ListMyApplications(ctx context.Context, q ApplicationQuery) (Page[domain.Application], error)
}

// Provisioner converts an approved application into a club membership.
type Provisioner interface {
	// Provision is idempotent for a given (club id, user id).
	Provision(ctx context.Context, clubID, userID string, role domain.Role) (domain.Membership, error)
}
