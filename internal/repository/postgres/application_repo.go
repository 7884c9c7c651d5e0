package postgres

import (
	"context"

	"go-match-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// GetByJobID retrieves all applications for a job with joined candidate data
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_user_id, COALESCE(a.cv_url, ''), a.status,
			a.created_at, a.updated_at,
			cp.full_name as candidate_name
		FROM applications a
		LEFT JOIN candidate_profiles cp ON a.candidate_user_id = cp.user_id
		WHERE a.job_id = $1
		ORDER BY a.created_at ASC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.CvURL, &app.Status,
			&app.CreatedAt, &app.UpdatedAt,
			&app.CandidateName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// BulkUpdateStatus writes selected/rejected statuses for one job in a single
// transaction so a partial failure leaves every application untouched.
func (r *applicationRepo) BulkUpdateStatus(ctx context.Context, jobID int64, selected, rejected []string) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE job_id = $2 AND candidate_user_id = ANY($3)`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if len(selected) > 0 {
			if _, err := tx.Exec(ctx, query, domain.ApplicationStatusSelected, jobID, selected); err != nil {
				return err
			}
		}
		if len(rejected) > 0 {
			if _, err := tx.Exec(ctx, query, domain.ApplicationStatusRejected, jobID, rejected); err != nil {
				return err
			}
		}
		return nil
	})
}
