package domain

import (
	"time"
)

// EventType names a recruitment event dispatched to the notification
// service.
type EventType string

const (
	EventCampaignCreated       EventType = "campaign.created"
	EventCampaignUpdated       EventType = "campaign.updated"
	EventCampaignPublished     EventType = "campaign.published"
	EventCampaignStatusChanged EventType = "campaign.status_changed"
	EventCampaignDeleted       EventType = "campaign.deleted"
	EventApplicationSubmitted  EventType = "application.submitted"
	EventApplicationApproved   EventType = "application.approved"
	EventApplicationRejected   EventType = "application.rejected"
	EventApplicationWithdrawn  EventType = "application.withdrawn"
)

// Event describes something that happened. Delivery and formatting belong
// to the notifier.
type Event struct {
	Type           EventType         `json:"event_type"`
	ClubID         string            `json:"club_id"`
	CampaignID     string            `json:"campaign_id"`
	ApplicationID  string            `json:"application_id,omitempty"`
	UserID         string            `json:"user_id,omitempty"`
	UserEmail      string            `json:"user_email,omitempty"`
	ActorID        string            `json:"actor_id,omitempty"`
	PreviousStatus string            `json:"previous_status,omitempty"`
	Status         string            `json:"status,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// CampaignEvent describes a campaign-level event.
func CampaignEvent(t EventType, c Campaign, actorID string, now time.Time) Event {
	return Event{
		Type:       t,
		ClubID:     c.ClubID,
		CampaignID: c.ID,
		ActorID:    actorID,
		Status:     string(c.Status),
		Attributes: map[string]string{"title": c.Title},
		OccurredAt: now,
	}
}

// ApplicationEvent describes an application-level event.
func ApplicationEvent(t EventType, a Application, actorID string, now time.Time) Event {
	e := Event{
		Type:          t,
		ClubID:        a.ClubID,
		CampaignID:    a.CampaignID,
		ApplicationID: a.ID,
		UserID:        a.UserID,
		UserEmail:     a.UserEmail,
		ActorID:       actorID,
		Status:        string(a.Status),
		OccurredAt:    now,
	}
	switch t {
	case EventApplicationApproved:
		e.Attributes = map[string]string{"role": string(a.AssignedRole)}
	case EventApplicationRejected:
		e.Attributes = map[string]string{"reason": a.RejectionReason}
	}
	return e
}
