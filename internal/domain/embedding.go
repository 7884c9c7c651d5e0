package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a backing store is temporarily refusing calls.
var ErrUnavailable = errors.New("dependency unavailable")

// EmbeddingDimension is the vector length produced by the embedding model.
const EmbeddingDimension = 384

// SubjectType identifies what an embedding was computed from.
type SubjectType string

const (
	SubjectResume SubjectType = "resume"
	SubjectJob    SubjectType = "job"
)

// Embedding is an immutable vector for a resume or a job description.
// Newer rows supersede older ones; rows are never updated in place.
type Embedding struct {
	ID          int64       `json:"id"`
	SubjectType SubjectType `json:"subject_type" validate:"required,oneof=resume job"`
	SubjectID   string      `json:"subject_id" validate:"required,max=64"`
	Vector      []float64   `json:"vector" validate:"len=384,dive,finite"`
	Model       string      `json:"model,omitempty" validate:"max=100"`
	CreatedAt   time.Time   `json:"created_at"`
}

// JobEmbedding pairs a job with its latest non-empty embedding.
type JobEmbedding struct {
	JobID     int64     `json:"job_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// SkippedEmbedding reports a stored embedding that could not be used.
type SkippedEmbedding struct {
	SubjectID string `json:"subject_id"`
	Reason    string `json:"reason"`
}

// JobEmbeddingFilter narrows AllJobEmbeddings. Empty JobIDs means every job.
type JobEmbeddingFilter struct {
	JobIDs   []int64
	OnlyOpen bool
	Limit    int
}

// EmbeddingRepository is the fetch boundary between the scoring engine and the
// embedding store.
type EmbeddingRepository interface {
	// LatestFor returns the most recently created embedding, or ErrNotFound.
	LatestFor(ctx context.Context, subjectType SubjectType, subjectID string) (*Embedding, error)
	// AllJobEmbeddings excludes jobs with missing or empty vectors and reports
	// malformed ones as skipped.
	AllJobEmbeddings(ctx context.Context, filter JobEmbeddingFilter) ([]JobEmbedding, []SkippedEmbedding, error)
	Save(ctx context.Context, e *Embedding) error
}
