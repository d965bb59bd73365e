package port

import (
	"math"

	"club-recruitment/internal/core/domain"
)

// CampaignSort selects the ordering of campaign listings.
type CampaignSort string

const (
	SortCreatedAt CampaignSort = "created_at" // newest first
	SortTitle     CampaignSort = "title"
	SortStartDate CampaignSort = "start_date"
	SortEndDate   CampaignSort = "end_date"
)

// CampaignQuery filters campaign listings. An empty ClubID matches every
// club. Statuses restricts the result to the given statuses when non-empty.
type CampaignQuery struct {
	ClubID   string
	Statuses []domain.CampaignStatus
	Sort     CampaignSort
	Page     PageRequest
}

// ApplicationQuery filters application listings. Exactly one of CampaignID
// and UserID is expected to be set.
type ApplicationQuery struct {
	CampaignID string
	UserID     string
	Status     domain.ApplicationStatus
	Page       PageRequest
}

// PageRequest is a 1-based page number and page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing for very large page numbers.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Pagination describes where a page sits within the full result.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// NewPagination computes page metadata for total matching rows.
func NewPagination(p PageRequest, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{
		CurrentPage:  p.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
