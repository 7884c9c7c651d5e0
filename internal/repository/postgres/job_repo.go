package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-match-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobProfileRepository {
	return &jobRepo{db: db}
}

const jobProfileColumns = `
	id, title, COALESCE(description, ''), COALESCE(required_skills, '{}'),
	COALESCE(min_experience_years, 0), status`

// GetProfile returns the job as the scoring engine sees it. The embedding is
// fetched separately through the embedding store.
func (r *jobRepo) GetProfile(ctx context.Context, jobID int64) (*domain.JobProfile, error) {
	query := `SELECT ` + jobProfileColumns + ` FROM jobs WHERE id = $1`

	var (
		job    domain.JobProfile
		skills []string
	)
	err := r.db.QueryRow(ctx, query, jobID).Scan(
		&job.JobID, &job.Title, &job.Description, pq.Array(&skills),
		&job.MinExperienceYears, &job.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %d: %w", jobID, domain.ErrNotFound)
		}
		return nil, err
	}
	job.RequiredSkills = skills
	return &job, nil
}

// ListOpenProfiles returns open jobs, newest first
func (r *jobRepo) ListOpenProfiles(ctx context.Context, limit int) ([]domain.JobProfile, error) {
	query := `SELECT ` + jobProfileColumns + `
		FROM jobs
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, domain.JobStatusOpen, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.JobProfile
	for rows.Next() {
		var (
			job    domain.JobProfile
			skills []string
		)
		if err := rows.Scan(
			&job.JobID, &job.Title, &job.Description, pq.Array(&skills),
			&job.MinExperienceYears, &job.Status,
		); err != nil {
			return nil, err
		}
		job.RequiredSkills = skills
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
