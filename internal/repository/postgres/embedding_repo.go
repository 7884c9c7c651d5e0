package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-match-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type embeddingRepo struct {
	db *pgxpool.Pool
}

// NewEmbeddingRepository creates the pgvector-backed embedding store
func NewEmbeddingRepository(db *pgxpool.Pool) domain.EmbeddingRepository {
	return &embeddingRepo{db: db}
}

// LatestFor returns the newest embedding for a subject. Ties on created_at
// go to the higher id, i.e. the later insert.
func (r *embeddingRepo) LatestFor(ctx context.Context, subjectType domain.SubjectType, subjectID string) (*domain.Embedding, error) {
	query := `
		SELECT id, subject_type, subject_id, embedding, COALESCE(model, ''), created_at
		FROM embeddings
		WHERE subject_type = $1 AND subject_id = $2 AND embedding IS NOT NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var (
		e   domain.Embedding
		vec pgvector.Vector
	)
	err := r.db.QueryRow(ctx, query, string(subjectType), subjectID).Scan(
		&e.ID, &e.SubjectType, &e.SubjectID, &vec, &e.Model, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s embedding for %s: %w", subjectType, subjectID, domain.ErrNotFound)
		}
		return nil, err
	}
	e.Vector = toFloat64(vec.Slice())
	if len(e.Vector) == 0 {
		return nil, fmt.Errorf("%s embedding for %s is empty: %w", subjectType, subjectID, domain.ErrNotFound)
	}
	return &e, nil
}

// AllJobEmbeddings returns the latest non-null embedding of every matching
// job. Rows with the wrong dimension or an unparsable job id are reported as
// skipped instead of failing the query.
func (r *embeddingRepo) AllJobEmbeddings(ctx context.Context, filter domain.JobEmbeddingFilter) ([]domain.JobEmbedding, []domain.SkippedEmbedding, error) {
	var (
		conds = []string{"e.subject_type = 'job'", "e.embedding IS NOT NULL"}
		args  []interface{}
	)
	if filter.OnlyOpen {
		conds = append(conds, "j.status = 'open'")
	}
	if len(filter.JobIDs) > 0 {
		args = append(args, filter.JobIDs)
		conds = append(conds, fmt.Sprintf("j.id = ANY($%d)", len(args)))
	}

	query := `
		SELECT DISTINCT ON (e.subject_id) e.subject_id, e.embedding, e.created_at
		FROM embeddings e
		JOIN jobs j ON j.id::text = e.subject_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY e.subject_id, e.created_at DESC, e.id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		embeddings []domain.JobEmbedding
		skipped    []domain.SkippedEmbedding
	)
	for rows.Next() {
		var (
			subjectID string
			vec       pgvector.Vector
			je        domain.JobEmbedding
		)
		if err := rows.Scan(&subjectID, &vec, &je.CreatedAt); err != nil {
			return nil, nil, err
		}

		jobID, err := strconv.ParseInt(subjectID, 10, 64)
		if err != nil {
			skipped = append(skipped, domain.SkippedEmbedding{SubjectID: subjectID, Reason: "invalid job id"})
			continue
		}
		values := vec.Slice()
		if len(values) == 0 {
			skipped = append(skipped, domain.SkippedEmbedding{SubjectID: subjectID, Reason: "empty embedding"})
			continue
		}
		if len(values) != domain.EmbeddingDimension {
			skipped = append(skipped, domain.SkippedEmbedding{
				SubjectID: subjectID,
				Reason:    fmt.Sprintf("expected %d dimensions, got %d", domain.EmbeddingDimension, len(values)),
			})
			continue
		}

		je.JobID = jobID
		je.Vector = toFloat64(values)
		embeddings = append(embeddings, je)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return embeddings, skipped, nil
}

// Save inserts a new embedding. Existing rows are never updated.
func (r *embeddingRepo) Save(ctx context.Context, e *domain.Embedding) error {
	if len(e.Vector) != domain.EmbeddingDimension {
		return fmt.Errorf("embedding must have %d dimensions, got %d", domain.EmbeddingDimension, len(e.Vector))
	}

	query := `
		INSERT INTO embeddings (subject_type, subject_id, embedding, model, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW())
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		string(e.SubjectType),
		e.SubjectID,
		pgvector.NewVector(toFloat32(e.Vector)),
		e.Model,
	).Scan(&e.ID, &e.CreatedAt)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
