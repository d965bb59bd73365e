package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

const (
	applicationColumns = `
            id,
            campaign_id,
            club_id,
            user_id,
            user_email,
            answers,
            message,
            status,
            reviewed_by,
            reviewed_at,
            review_notes,
            rejection_reason,
            assigned_role,
            membership_created,
            membership_id,
            submitted_at,
            updated_at`

	applicationCampaignUserKey = "applications_campaign_user_key"
)

// ApplicationRepository implements port.ApplicationRepository using
// pgxpool for PostgreSQL.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

var _ port.ApplicationRepository = (*ApplicationRepository)(nil)

// NewApplicationRepository returns a new repository instance.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create inserts an application. The (campaign_id, user_id) unique
// constraint turns concurrent duplicate submissions into
// domain.KindDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	answers, err := marshalAnswers(a.Answers)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO applications
    (id, campaign_id, club_id, user_id, user_email, answers, message, status, submitted_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.CampaignID, a.ClubID, a.UserID, a.UserEmail, answers, a.Message, a.Status, a.SubmittedAt, a.UpdatedAt)
	if isUniqueViolation(err, applicationCampaignUserKey) {
		return domain.WrapError(domain.KindDuplicate, err, "user %s already applied to campaign %s", a.UserID, a.CampaignID)
	}
	return err
}

// Get returns an application by id.
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*domain.Application, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanApplication)
	if err != nil {
		return nil, notFound(err, "application", id)
	}
	return &a, nil
}

// Exists reports whether userID has an application for campaignID.
func (r *ApplicationRepository) Exists(ctx context.Context, campaignID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE campaign_id = $1 AND user_id = $2)`,
		campaignID, userID).Scan(&exists)
	return exists, err
}

// Update writes status, answers and review fields.
func (r *ApplicationRepository) Update(ctx context.Context, a *domain.Application) error {
	answers, err := marshalAnswers(a.Answers)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET
    answers = $2, message = $3, status = $4, reviewed_by = $5, reviewed_at = $6, review_notes = $7,
    rejection_reason = $8, assigned_role = $9, membership_created = $10, membership_id = $11, updated_at = $12
WHERE id = $1`,
		a.ID, answers, a.Message, a.Status, a.ReviewedBy, a.ReviewedAt, a.ReviewNotes,
		a.RejectionReason, a.AssignedRole, a.MembershipCreated, a.MembershipID, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("application", a.ID)
	}
	return nil
}

// Approve stores the approval if the campaign is below maxApproved. The
// campaign row is locked so concurrent approvals are counted one at a time.
func (r *ApplicationRepository) Approve(ctx context.Context, a *domain.Application, maxApproved *int) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	// lock campaign
	var campaignID string
	err = tx.QueryRow(ctx, `SELECT id FROM campaigns WHERE id = $1 FOR UPDATE`, a.CampaignID).Scan(&campaignID)
	if err != nil {
		return notFound(err, "campaign", a.CampaignID)
	}
	if maxApproved != nil {
		var approved int64
		err = tx.QueryRow(ctx, `SELECT count(*) FROM applications WHERE campaign_id = $1 AND status = $2`,
			a.CampaignID, domain.ApplicationApproved).Scan(&approved)
		if err != nil {
			return err
		}
		if approved >= int64(*maxApproved) {
			return domain.NewError(domain.KindCapacityExceeded,
				"campaign %s already approved %d of %d applications", a.CampaignID, approved, *maxApproved)
		}
	}
	tag, err := tx.Exec(ctx, `UPDATE applications SET
    status = $2, reviewed_by = $3, reviewed_at = $4, review_notes = $5, assigned_role = $6,
    membership_created = false, updated_at = $7
WHERE id = $1 AND status IN ($8, $9)`,
		a.ID, a.Status, a.ReviewedBy, a.ReviewedAt, a.ReviewNotes, a.AssignedRole, a.UpdatedAt,
		domain.ApplicationPending, domain.ApplicationUnderReview)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.KindInvalidTransition, "application %s is no longer awaiting review", a.ID)
	}
	return nil
}

// CountByStatus counts a campaign's applications per status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context, campaignID string) (map[domain.ApplicationStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM applications WHERE campaign_id = $1 GROUP BY status`, campaignID)
	if err != nil {
		return nil, err
	}
	type statusCount struct {
		Status domain.ApplicationStatus
		Count  int64
	}
	counted, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (statusCount, error) {
		var sc statusCount
		err := row.Scan(&sc.Status, &sc.Count)
		return sc, err
	})
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ApplicationStatus]int64, len(counted))
	for _, sc := range counted {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// List returns one page of applications ordered by submission time
// descending, ties broken by id ascending.
func (r *ApplicationRepository) List(ctx context.Context, q port.ApplicationQuery) ([]domain.Application, int64, error) {
	var w whereBuilder
	if q.CampaignID != "" {
		w.add("campaign_id = ?", q.CampaignID)
	}
	if q.UserID != "" {
		w.add("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		w.add("status = ?", q.Status)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where := w.String()
	page := w.limitOffset(q.Page)
	query := fmt.Sprintf(`SELECT %s FROM applications %s ORDER BY submitted_at DESC, id ASC %s`, applicationColumns, where, page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	apps, err := pgx.CollectRows(rows, scanApplication)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func marshalAnswers(answers []domain.Answer) ([]byte, error) {
	if answers == nil {
		answers = []domain.Answer{}
	}
	b, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	return b, nil
}

func scanApplication(row pgx.CollectableRow) (domain.Application, error) {
	var (
		a          domain.Application
		answersRaw []byte
	)
	err := row.Scan(
		&a.ID,
		&a.CampaignID,
		&a.ClubID,
		&a.UserID,
		&a.UserEmail,
		&answersRaw,
		&a.Message,
		&a.Status,
		&a.ReviewedBy,
		&a.ReviewedAt,
		&a.ReviewNotes,
		&a.RejectionReason,
		&a.AssignedRole,
		&a.MembershipCreated,
		&a.MembershipID,
		&a.SubmittedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	if err = json.Unmarshal(answersRaw, &a.Answers); err != nil {
		return a, fmt.Errorf("decode answers of application %s: %w", a.ID, err)
	}
	return a, nil
}
