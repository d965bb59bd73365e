package domain

import (
	"strings"
	"time"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

// Application is one user's submission against a campaign. At most one
// exists per (CampaignID, UserID).
type Application struct {
	ID                string
	CampaignID        string
	ClubID            string
	UserID            string
	UserEmail         string
	Answers           []Answer
	Message           string
	Status            ApplicationStatus
	ReviewedBy        string
	ReviewedAt        *time.Time
	ReviewNotes       string
	RejectionReason   string
	AssignedRole      Role // set on approval only
	MembershipCreated bool
	MembershipID      string
	SubmittedAt       time.Time
	UpdatedAt         time.Time
}

// Submission holds what an applicant sends.
type Submission struct {
	CampaignID string
	UserID     string
	UserEmail  string
	Answers    []AnswerInput
	Message    string
}

// NewApplication builds a pending application for c. The caller is
// responsible for running the submission guard first.
func NewApplication(c Campaign, s Submission, id string, now time.Time) (Application, error) {
	if strings.TrimSpace(s.UserID) == "" {
		return Application{}, ValidationError("applicant id is required", "user_id")
	}
	answers, err := BuildAnswers(c.Questions, s.Answers)
	if err != nil {
		return Application{}, err
	}
	return Application{
		ID:          id,
		CampaignID:  c.ID,
		ClubID:      c.ClubID,
		UserID:      s.UserID,
		UserEmail:   strings.ToLower(strings.TrimSpace(s.UserEmail)),
		Answers:     answers,
		Message:     strings.TrimSpace(s.Message),
		Status:      ApplicationPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}, nil
}

// Transition applies action, failing when the current status forbids it.
func (a *Application) Transition(action ApplicationAction, now time.Time) error {
	next, err := a.Status.Next(action)
	if err != nil {
		return err
	}
	a.Status = next
	a.UpdatedAt = now
	return nil
}

// OwnedBy reports whether userID submitted the application.
func (a Application) OwnedBy(userID string) bool {
	return a.UserID == userID
}

// ReviewDecision is a manager's verdict on an application.
type ReviewDecision struct {
	ApplicationID   string
	ReviewerID      string
	Status          ApplicationStatus // approved or rejected
	Notes           string
	RejectionReason string
	Role            Role // defaults to member on approval
}

// Action maps the requested status to its transition.
func (d ReviewDecision) Action() (ApplicationAction, error) {
	switch d.Status {
	case ApplicationApproved:
		return ApplicationApprove, nil
	case ApplicationRejected:
		if strings.TrimSpace(d.RejectionReason) == "" {
			return "", ValidationError("rejection reason is required", "rejection_reason")
		}
		return ApplicationReject, nil
	default:
		return "", ValidationError("review status must be approved or rejected", "status")
	}
}

// stampReview records who decided and when.
func (a *Application) stampReview(reviewerID, notes string, now time.Time) {
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	a.ReviewNotes = strings.TrimSpace(notes)
}

// Approve moves the application to approved with role pending provisioning.
func (a *Application) Approve(d ReviewDecision, now time.Time) error {
	if err := a.Transition(ApplicationApprove, now); err != nil {
		return err
	}
	a.stampReview(d.ReviewerID, d.Notes, now)
	a.AssignedRole = d.Role
	a.MembershipCreated = false
	return nil
}

// Reject moves the application to rejected with the given reason.
func (a *Application) Reject(d ReviewDecision, now time.Time) error {
	if strings.TrimSpace(d.RejectionReason) == "" {
		return ValidationError("rejection reason is required", "rejection_reason")
	}
	if err := a.Transition(ApplicationReject, now); err != nil {
		return err
	}
	a.stampReview(d.ReviewerID, d.Notes, now)
	a.RejectionReason = strings.TrimSpace(d.RejectionReason)
	return nil
}

// RevertApproval undoes Approve after a provisioning failure.
func (a *Application) RevertApproval(now time.Time) error {
	if err := a.Transition(ApplicationRevertApproval, now); err != nil {
		return err
	}
	a.AssignedRole = ""
	a.MembershipCreated = false
	a.MembershipID = ""
	return nil
}

// Reopen is the administrative override returning a rejected application
// to pending. Prior review fields are cleared.
func (a *Application) Reopen(now time.Time) error {
	if err := a.Transition(ApplicationReopen, now); err != nil {
		return err
	}
	a.ReviewedBy = ""
	a.ReviewedAt = nil
	a.ReviewNotes = ""
	a.RejectionReason = ""
	return nil
}
