package httpadapter

import (
	"encoding/json"
	"fmt"
	"time"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

type createCampaignRequest struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Requirements    []string          `json:"requirements"`
	Questions       []domain.Question `json:"questions"`
	StartDate       string            `json:"start_date"`
	EndDate         string            `json:"end_date"`
	MaxApplications *int              `json:"max_applications"`
}

func (req createCampaignRequest) draft(clubID, userID string) (domain.CampaignDraft, error) {
	start, err := parseTime("start_date", req.StartDate)
	if err != nil {
		return domain.CampaignDraft{}, err
	}
	end, err := parseTime("end_date", req.EndDate)
	if err != nil {
		return domain.CampaignDraft{}, err
	}
	return domain.CampaignDraft{
		ClubID:          clubID,
		CreatedBy:       userID,
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Questions:       req.Questions,
		StartDate:       start,
		EndDate:         end,
		MaxApplications: req.MaxApplications,
	}, nil
}

type updateCampaignRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	Requirements    *[]string          `json:"requirements"`
	Questions       *[]domain.Question `json:"questions"`
	StartDate       *string            `json:"start_date"`
	EndDate         *string            `json:"end_date"`
	MaxApplications *int               `json:"max_applications"`
}

func (req updateCampaignRequest) patch() (domain.CampaignPatch, error) {
	p := domain.CampaignPatch{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Questions:       req.Questions,
		MaxApplications: req.MaxApplications,
	}
	if req.StartDate != nil {
		t, err := parseTime("start_date", *req.StartDate)
		if err != nil {
			return p, err
		}
		p.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseTime("end_date", *req.EndDate)
		if err != nil {
			return p, err
		}
		p.EndDate = &t
	}
	return p, nil
}

func parseTime(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.ValidationError(fmt.Sprintf("%s must be an RFC3339 timestamp", field), field)
	}
	return t, nil
}

// answerValue accepts either a JSON string or an array of strings.
type answerValue []string

func (v *answerValue) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*v = answerValue{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings")
	}
	*v = many
	return nil
}

type answerRequest struct {
	QuestionID string      `json:"question_id"`
	Answer     answerValue `json:"answer"`
}

func answerInputs(in []answerRequest) []domain.AnswerInput {
	out := make([]domain.AnswerInput, len(in))
	for i, a := range in {
		out[i] = domain.AnswerInput{QuestionID: a.QuestionID, Values: a.Answer}
	}
	return out
}

type submitApplicationRequest struct {
	Answers []answerRequest `json:"answers"`
	Message string          `json:"message"`
}

type updateApplicationRequest struct {
	Answers []answerRequest `json:"answers"`
	Message *string         `json:"message"`
}

type reviewRequest struct {
	Status          domain.ApplicationStatus `json:"status"`
	Notes           string                   `json:"review_notes"`
	RejectionReason string                   `json:"rejection_reason"`
	Role            domain.Role              `json:"role"`
}

type statisticsResponse struct {
	TotalApplications int64     `json:"total_applications"`
	Pending           int64     `json:"pending_applications"`
	UnderReview       int64     `json:"under_review_applications"`
	Approved          int64     `json:"approved_applications"`
	Rejected          int64     `json:"rejected_applications"`
	Withdrawn         int64     `json:"withdrawn_applications"`
	LastUpdated       time.Time `json:"last_updated"`
}

func newStatisticsResponse(s domain.Statistics) statisticsResponse {
	return statisticsResponse{
		TotalApplications: s.Total,
		Pending:           s.Pending,
		UnderReview:       s.UnderReview,
		Approved:          s.Approved,
		Rejected:          s.Rejected,
		Withdrawn:         s.Withdrawn,
		LastUpdated:       s.LastUpdated,
	}
}

type campaignResponse struct {
	ID              string             `json:"id"`
	ClubID          string             `json:"club_id"`
	CreatedBy       string             `json:"created_by"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Requirements    []string           `json:"requirements"`
	Questions       []domain.Question  `json:"application_questions"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	MaxApplications *int               `json:"max_applications,omitempty"`
	Status          string             `json:"status"`
	Expired         bool               `json:"expired"`
	Statistics      statisticsResponse `json:"statistics"`
	PublishedAt     *time.Time         `json:"published_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func newCampaignResponse(c domain.Campaign, now time.Time) campaignResponse {
	reqs := c.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	qs := c.Questions
	if qs == nil {
		qs = []domain.Question{}
	}
	return campaignResponse{
		ID:              c.ID,
		ClubID:          c.ClubID,
		CreatedBy:       c.CreatedBy,
		Title:           c.Title,
		Description:     c.Description,
		Requirements:    reqs,
		Questions:       qs,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		MaxApplications: c.MaxApplications,
		Status:          string(c.Status),
		Expired:         c.Expired(now),
		Statistics:      newStatisticsResponse(c.Statistics),
		PublishedAt:     c.PublishedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type applicationResponse struct {
	ID                string          `json:"id"`
	CampaignID        string          `json:"campaign_id"`
	ClubID            string          `json:"club_id"`
	UserID            string          `json:"user_id"`
	UserEmail         string          `json:"user_email,omitempty"`
	Answers           []domain.Answer `json:"application_answers"`
	Message           string          `json:"application_message,omitempty"`
	Status            string          `json:"status"`
	ReviewedBy        string          `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNotes       string          `json:"review_notes,omitempty"`
	RejectionReason   string          `json:"rejection_reason,omitempty"`
	AssignedRole      string          `json:"assigned_role,omitempty"`
	MembershipCreated bool            `json:"membership_created"`
	MembershipID      string          `json:"membership_id,omitempty"`
	SubmittedAt       time.Time       `json:"submitted_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func newApplicationResponse(a domain.Application) applicationResponse {
	answers := a.Answers
	if answers == nil {
		answers = []domain.Answer{}
	}
	return applicationResponse{
		ID:                a.ID,
		CampaignID:        a.CampaignID,
		ClubID:            a.ClubID,
		UserID:            a.UserID,
		UserEmail:         a.UserEmail,
		Answers:           answers,
		Message:           a.Message,
		Status:            string(a.Status),
		ReviewedBy:        a.ReviewedBy,
		ReviewedAt:        a.ReviewedAt,
		ReviewNotes:       a.ReviewNotes,
		RejectionReason:   a.RejectionReason,
		AssignedRole:      string(a.AssignedRole),
		MembershipCreated: a.MembershipCreated,
		MembershipID:      a.MembershipID,
		SubmittedAt:       a.SubmittedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

type pageResponse[T any] struct {
	Items      []T             `json:"items"`
	Pagination port.Pagination `json:"pagination"`
}

func newPageResponse[S, T any](p port.Page[S], conv func(S) T) pageResponse[T] {
	items := make([]T, len(p.Items))
	for i, it := range p.Items {
		items[i] = conv(it)
	}
	return pageResponse[T]{Items: items, Pagination: p.Pagination}
}
