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

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

// GetProfile loads the resume-derived features of a candidate. Project
// descriptions come from the candidate_projects table.
func (r *candidateRepository) GetProfile(ctx context.Context, candidateID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT
			cp.user_id,
			COALESCE(cp.full_name, ''),
			COALESCE(cp.skills, '{}'),
			COALESCE(cp.experience_years, 0)::float8,
			COALESCE(
				ARRAY(SELECT p.description FROM candidate_projects p
				      WHERE p.user_id = cp.user_id AND p.description IS NOT NULL
				      ORDER BY p.created_at),
				'{}')
		FROM candidate_profiles cp
		WHERE cp.user_id = $1`

	var (
		p        domain.CandidateProfile
		skills   []string
		projects []string
	)
	err := r.db.QueryRow(ctx, query, candidateID).Scan(
		&p.CandidateID, &p.Name, pq.Array(&skills), &p.ExperienceYears, pq.Array(&projects),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("candidate %s: %w", candidateID, domain.ErrNotFound)
		}
		return nil, err
	}
	p.Skills = skills
	p.Projects = projects
	return &p, nil
}
