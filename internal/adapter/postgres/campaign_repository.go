package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

const campaignColumns = `
            id,
            club_id,
            created_by,
            title,
            description,
            requirements,
            questions,
            start_date,
            end_date,
            max_applications,
            status,
            stats_total,
            stats_pending,
            stats_under_review,
            stats_approved,
            stats_rejected,
            stats_withdrawn,
            stats_last_updated,
            published_at,
            created_at,
            updated_at,
            deleted_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts a campaign.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	requirements, questions, err := marshalCampaignJSON(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns
    (id, club_id, created_by, title, description, requirements, questions, start_date, end_date,
     max_applications, status, stats_last_updated, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		c.ID, c.ClubID, c.CreatedBy, c.Title, c.Description, requirements, questions, c.StartDate, c.EndDate,
		c.MaxApplications, c.Status, c.Statistics.LastUpdated, c.CreatedAt, c.UpdatedAt)
	return err
}

// Get returns a live campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCampaign)
	if err != nil {
		return nil, notFound(err, "campaign", id)
	}
	return &c, nil
}

// Update writes the mutable fields and status. Statistics are owned by
// SaveStatistics and left untouched.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	requirements, questions, err := marshalCampaignJSON(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
    title = $2, description = $3, requirements = $4, questions = $5, start_date = $6, end_date = $7,
    max_applications = $8, status = $9, published_at = $10, updated_at = $11
WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Title, c.Description, requirements, questions, c.StartDate, c.EndDate,
		c.MaxApplications, c.Status, c.PublishedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("campaign", c.ID)
	}
	return nil
}

// Delete stamps deleted_at.
func (r *CampaignRepository) Delete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("campaign", id)
	}
	return nil
}

// List returns one page of live campaigns matching q and the total count.
func (r *CampaignRepository) List(ctx context.Context, q port.CampaignQuery) ([]domain.Campaign, int64, error) {
	var w whereBuilder
	w.add("deleted_at IS NULL")
	if q.ClubID != "" {
		w.add("club_id = ?", q.ClubID)
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		w.add("status = ANY(?)", statuses)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where := w.String()
	page := w.limitOffset(q.Page)
	query := fmt.Sprintf(`SELECT %s FROM campaigns %s %s %s`, campaignColumns, where, campaignOrder(q.Sort), page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	campaigns, err := pgx.CollectRows(rows, scanCampaign)
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// SaveStatistics replaces the cached statistics columns.
func (r *CampaignRepository) SaveStatistics(ctx context.Context, campaignID string, s domain.Statistics) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
    stats_total = $2, stats_pending = $3, stats_under_review = $4, stats_approved = $5,
    stats_rejected = $6, stats_withdrawn = $7, stats_last_updated = $8
WHERE id = $1`,
		campaignID, s.Total, s.Pending, s.UnderReview, s.Approved, s.Rejected, s.Withdrawn, s.LastUpdated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("campaign", campaignID)
	}
	return nil
}

func marshalCampaignJSON(c *domain.Campaign) (requirements, questions []byte, err error) {
	reqs := c.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	if requirements, err = json.Marshal(reqs); err != nil {
		return nil, nil, fmt.Errorf("encode requirements: %w", err)
	}
	qs := c.Questions
	if qs == nil {
		qs = []domain.Question{}
	}
	if questions, err = json.Marshal(qs); err != nil {
		return nil, nil, fmt.Errorf("encode questions: %w", err)
	}
	return requirements, questions, nil
}

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var (
		c               domain.Campaign
		requirementsRaw []byte
		questionsRaw    []byte
	)
	err := row.Scan(
		&c.ID,
		&c.ClubID,
		&c.CreatedBy,
		&c.Title,
		&c.Description,
		&requirementsRaw,
		&questionsRaw,
		&c.StartDate,
		&c.EndDate,
		&c.MaxApplications,
		&c.Status,
		&c.Statistics.Total,
		&c.Statistics.Pending,
		&c.Statistics.UnderReview,
		&c.Statistics.Approved,
		&c.Statistics.Rejected,
		&c.Statistics.Withdrawn,
		&c.Statistics.LastUpdated,
		&c.PublishedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return c, err
	}
	if err = json.Unmarshal(requirementsRaw, &c.Requirements); err != nil {
		return c, fmt.Errorf("decode requirements of campaign %s: %w", c.ID, err)
	}
	if err = json.Unmarshal(questionsRaw, &c.Questions); err != nil {
		return c, fmt.Errorf("decode questions of campaign %s: %w", c.ID, err)
	}
	return c, nil
}
