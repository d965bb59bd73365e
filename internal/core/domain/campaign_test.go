package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func validDraft() CampaignDraft {
	return CampaignDraft{
		ClubID:       "club-1",
		CreatedBy:    "manager-1",
		Title:        "  Spring intake ",
		Description:  "Join us",
		Requirements: []string{" be kind ", ""},
		Questions: []Question{
			{Prompt: "Why?", Type: QuestionText, Required: true},
		},
		StartDate: testNow.Add(-24 * time.Hour),
		EndDate:   testNow.Add(24 * time.Hour),
	}
}

func TestNewCampaign(t *testing.T) {
	c, err := NewCampaign(validDraft(), "c1", testNow)
	require.NoError(t, err)

	assert.Equal(t, CampaignStatusDraft, c.Status)
	assert.Equal(t, "Spring intake", c.Title)
	assert.Equal(t, []string{"be kind"}, c.Requirements)
	assert.Equal(t, "q1", c.Questions[0].ID)
	assert.Equal(t, testNow, c.CreatedAt)
	assert.Equal(t, testNow, c.Statistics.LastUpdated)
	assert.Nil(t, c.PublishedAt)
}

func TestNewCampaign_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CampaignDraft)
	}{
		{"missing club", func(d *CampaignDraft) { d.ClubID = " " }},
		{"missing title", func(d *CampaignDraft) { d.Title = "   " }},
		{"long title", func(d *CampaignDraft) { d.Title = strings.Repeat("t", 201) }},
		{"long description", func(d *CampaignDraft) { d.Description = strings.Repeat("d", 2001) }},
		{"missing start", func(d *CampaignDraft) { d.StartDate = time.Time{} }},
		{"missing end", func(d *CampaignDraft) { d.EndDate = time.Time{} }},
		{"end equals start", func(d *CampaignDraft) { d.EndDate = d.StartDate }},
		{"end before start", func(d *CampaignDraft) { d.EndDate = d.StartDate.Add(-time.Minute) }},
		{"zero capacity", func(d *CampaignDraft) { d.MaxApplications = intPtr(0) }},
		{"question without type", func(d *CampaignDraft) { d.Questions = []Question{{Prompt: "x"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := NewCampaign(d, "c1", testNow)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCampaign_AcceptsSubmissions(t *testing.T) {
	c, err := NewCampaign(validDraft(), "c1", testNow)
	require.NoError(t, err)

	assert.ErrorIs(t, c.AcceptsSubmissions(testNow), ErrNotAccepting, "draft")

	require.NoError(t, c.Transition(CampaignPublish, testNow))
	require.NotNil(t, c.PublishedAt)
	assert.NoError(t, c.AcceptsSubmissions(testNow))
	assert.NoError(t, c.AcceptsSubmissions(c.StartDate), "window start is inclusive")
	assert.NoError(t, c.AcceptsSubmissions(c.EndDate), "window end is inclusive")
	assert.ErrorIs(t, c.AcceptsSubmissions(c.StartDate.Add(-time.Second)), ErrNotAccepting)
	assert.ErrorIs(t, c.AcceptsSubmissions(c.EndDate.Add(time.Second)), ErrNotAccepting)
	assert.True(t, c.Expired(c.EndDate.Add(time.Second)))
	assert.False(t, c.Expired(c.EndDate))

	require.NoError(t, c.Transition(CampaignPause, testNow))
	assert.ErrorIs(t, c.AcceptsSubmissions(testNow), ErrNotAccepting, "paused")
}

func TestCampaign_ApplyPatch(t *testing.T) {
	c, err := NewCampaign(validDraft(), "c1", testNow)
	require.NoError(t, err)
	later := testNow.Add(time.Hour)

	title := "Autumn intake"
	require.NoError(t, c.ApplyPatch(CampaignPatch{Title: &title, MaxApplications: intPtr(3)}, false, later))
	assert.Equal(t, title, c.Title)
	assert.Equal(t, 3, *c.MaxApplications)
	assert.Equal(t, later, c.UpdatedAt)

	t.Run("invalid patch leaves campaign untouched", func(t *testing.T) {
		end := c.StartDate.Add(-time.Hour)
		err := c.ApplyPatch(CampaignPatch{Title: new(string), EndDate: &end}, false, later)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, title, c.Title)
	})

	t.Run("questions frozen once applications exist", func(t *testing.T) {
		qs := []Question{{Prompt: "New", Type: QuestionText}}
		err := c.ApplyPatch(CampaignPatch{Questions: &qs}, true, later)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		err = c.ApplyPatch(CampaignPatch{MaxApplications: intPtr(9)}, true, later)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		desc := "still editable"
		assert.NoError(t, c.ApplyPatch(CampaignPatch{Description: &desc}, true, later))
	})

	t.Run("paused and completed campaigns are read-only", func(t *testing.T) {
		require.NoError(t, c.Transition(CampaignPublish, later))
		require.NoError(t, c.Transition(CampaignPause, later))
		err := c.ApplyPatch(CampaignPatch{Title: &title}, false, later)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCampaign_AtCapacity(t *testing.T) {
	c := Campaign{}
	assert.False(t, c.AtCapacity(1000))
	c.MaxApplications = intPtr(2)
	assert.False(t, c.AtCapacity(1))
	assert.True(t, c.AtCapacity(2))
}
