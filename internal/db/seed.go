package db

import (
	"context"
	"log/slog"
	"time"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// Demo identifiers inserted by Seed.
const (
	DemoClubID     = "demo-club"
	DemoManagerID  = "demo-organizer"
	DemoCampaignID = "demo-campaign"
)

// Seed inserts a demo club organizer and one published campaign open for
// thirty days. It is a no-op when the demo campaign already exists.
func Seed(ctx context.Context, campaigns port.CampaignRepository, members port.MembershipStore, now time.Time, logger *slog.Logger) error {
	now = now.UTC()
	if _, _, err := members.Provision(ctx, domain.Membership{
		ID:       "demo-organizer-membership",
		ClubID:   DemoClubID,
		UserID:   DemoManagerID,
		Role:     domain.RoleOrganizer,
		JoinedAt: now,
	}); err != nil {
		return err
	}

	if _, err := campaigns.Get(ctx, DemoCampaignID); err == nil {
		logger.Debug("demo data already present")
		return nil
	} else if domain.KindOf(err) != domain.KindNotFound {
		return err
	}

	maxLen := 500
	c, err := domain.NewCampaign(domain.CampaignDraft{
		ClubID:       DemoClubID,
		CreatedBy:    DemoManagerID,
		Title:        "Autumn intake",
		Description:  "We are looking for new members to help run weekly meetups.",
		Requirements: []string{"Attend at least two meetups a month"},
		Questions: []domain.Question{
			{Prompt: "Why do you want to join?", Type: domain.QuestionTextarea, Required: true, MaxLength: &maxLen},
			{Prompt: "Which team interests you?", Type: domain.QuestionRadio, Required: true, Options: []string{"events", "design", "outreach"}},
			{Prompt: "Which days are you available?", Type: domain.QuestionCheckbox, Options: []string{"mon", "wed", "fri"}},
		},
		StartDate: now.Add(-time.Hour),
		EndDate:   now.AddDate(0, 0, 30),
	}, DemoCampaignID, now)
	if err != nil {
		return err
	}
	if err = c.Transition(domain.CampaignPublish, now); err != nil {
		return err
	}
	if err = campaigns.Create(ctx, &c); err != nil {
		return err
	}
	logger.Info("demo data seeded",
		slog.String("club_id", DemoClubID),
		slog.String("campaign_id", DemoCampaignID),
		slog.String("organizer_id", DemoManagerID))
	return nil
}
