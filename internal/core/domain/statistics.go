package domain

import "time"

// Statistics is a projection over a campaign's applications. It is always
// recomputed from a direct count, never incremented.
type Statistics struct {
	Total       int64 // pending + under review + approved + rejected
	Pending     int64
	UnderReview int64
	Approved    int64
	Rejected    int64
	Withdrawn   int64 // reported separately, not part of Total
	LastUpdated time.Time
}

// NewStatistics builds the projection from per-status counts.
func NewStatistics(counts map[ApplicationStatus]int64, now time.Time) Statistics {
	s := Statistics{
		Pending:     counts[ApplicationPending],
		UnderReview: counts[ApplicationUnderReview],
		Approved:    counts[ApplicationApproved],
		Rejected:    counts[ApplicationRejected],
		Withdrawn:   counts[ApplicationWithdrawn],
		LastUpdated: now,
	}
	s.Total = s.Pending + s.UnderReview + s.Approved + s.Rejected
	return s
}
