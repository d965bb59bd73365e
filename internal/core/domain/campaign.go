package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// CampaignStatus is the stored lifecycle state of a recruitment campaign.
// Expiry is not a status; see Campaign.Expired.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusPublished CampaignStatus = "published"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Valid reports whether s is a known campaign status.
func (s CampaignStatus) Valid() bool {
	_, ok := campaignTransitions[s]
	return ok
}

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// Campaign represents a club's time-boxed recruitment drive.
type Campaign struct {
	ID              string
	ClubID          string
	CreatedBy       string
	Title           string
	Description     string
	Requirements    []string
	Questions       []Question
	StartDate       time.Time
	EndDate         time.Time
	MaxApplications *int // soft cap, enforced on approval only
	Status          CampaignStatus
	Statistics      Statistics
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// CampaignDraft holds the manager-supplied fields of a new campaign.
type CampaignDraft struct {
	ClubID          string
	CreatedBy       string
	Title           string
	Description     string
	Requirements    []string
	Questions       []Question
	StartDate       time.Time
	EndDate         time.Time
	MaxApplications *int
}

// CampaignPatch is a partial update. Nil fields are left untouched.
type CampaignPatch struct {
	Title           *string
	Description     *string
	Requirements    *[]string
	Questions       *[]Question
	StartDate       *time.Time
	EndDate         *time.Time
	MaxApplications *int
}

// NewCampaign validates d and returns a campaign in draft.
func NewCampaign(d CampaignDraft, id string, now time.Time) (Campaign, error) {
	if strings.TrimSpace(d.ClubID) == "" {
		return Campaign{}, ValidationError("club id is required", "club_id")
	}
	c := Campaign{
		ID:              id,
		ClubID:          d.ClubID,
		CreatedBy:       d.CreatedBy,
		Title:           strings.TrimSpace(d.Title),
		Description:     strings.TrimSpace(d.Description),
		Requirements:    d.Requirements,
		Questions:       d.Questions,
		StartDate:       d.StartDate.UTC(),
		EndDate:         d.EndDate.UTC(),
		MaxApplications: d.MaxApplications,
		Status:          CampaignStatusDraft,
		Statistics:      Statistics{LastUpdated: now},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := c.normalize(); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

// ApplyPatch updates the editable fields. Questions and the capacity are
// frozen once the campaign has received applications.
func (c *Campaign) ApplyPatch(p CampaignPatch, hasApplications bool, now time.Time) error {
	if _, err := c.Status.Next(CampaignUpdate); err != nil {
		return err
	}
	if hasApplications && (p.Questions != nil || p.MaxApplications != nil) {
		return NewError(KindInvalidTransition,
			"cannot modify application questions or max applications after applications have been submitted")
	}

	next := *c
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Requirements != nil {
		next.Requirements = *p.Requirements
	}
	if p.Questions != nil {
		next.Questions = *p.Questions
	}
	if p.StartDate != nil {
		next.StartDate = p.StartDate.UTC()
	}
	if p.EndDate != nil {
		next.EndDate = p.EndDate.UTC()
	}
	if p.MaxApplications != nil {
		next.MaxApplications = p.MaxApplications
	}
	if err := next.normalize(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*c = next
	return nil
}

// Transition moves the campaign through action, stamping published-at on
// first publication.
func (c *Campaign) Transition(action CampaignAction, now time.Time) error {
	next, err := c.Status.Next(action)
	if err != nil {
		return err
	}
	if action == CampaignPublish {
		c.PublishedAt = &now
	}
	c.Status = next
	c.UpdatedAt = now
	return nil
}

// Expired reports whether the application window has closed.
func (c Campaign) Expired(now time.Time) bool {
	return c.EndDate.Before(now)
}

// AcceptsSubmissions is the submission guard: the campaign must be
// published and now must fall within [start, end]. Capacity is not checked
// here.
func (c Campaign) AcceptsSubmissions(now time.Time) error {
	switch {
	case c.Status != CampaignStatusPublished:
		return NewError(KindNotAccepting, "campaign is %s", c.Status)
	case now.Before(c.StartDate):
		return NewError(KindNotAccepting, "campaign opens at %s", c.StartDate.Format(time.RFC3339))
	case now.After(c.EndDate):
		return NewError(KindNotAccepting, "campaign closed at %s", c.EndDate.Format(time.RFC3339))
	}
	return nil
}

// AtCapacity reports whether another approval would exceed the cap, given
// the number of applications already approved.
func (c Campaign) AtCapacity(approved int64) bool {
	return c.MaxApplications != nil && approved >= int64(*c.MaxApplications)
}

func (c *Campaign) normalize() error {
	var problems []string
	switch {
	case c.Title == "":
		problems = append(problems, "title is required")
	case utf8.RuneCountInString(c.Title) > maxTitleLength:
		problems = append(problems, fmt.Sprintf("title must be %d characters or less", maxTitleLength))
	}
	if utf8.RuneCountInString(c.Description) > maxDescriptionLength {
		problems = append(problems, fmt.Sprintf("description must be %d characters or less", maxDescriptionLength))
	}
	switch {
	case c.StartDate.IsZero():
		problems = append(problems, "start date is required")
	case c.EndDate.IsZero():
		problems = append(problems, "end date is required")
	case !c.EndDate.After(c.StartDate):
		problems = append(problems, "end date must be after start date")
	}
	if c.MaxApplications != nil && *c.MaxApplications < 1 {
		problems = append(problems, "max applications must be positive")
	}

	reqs := make([]string, 0, len(c.Requirements))
	for _, r := range c.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	c.Requirements = reqs

	questions, qProblems := validateQuestions(c.Questions)
	c.Questions = questions
	problems = append(problems, qProblems...)

	if len(problems) > 0 {
		return ValidationError("invalid campaign", problems...)
	}
	return nil
}
