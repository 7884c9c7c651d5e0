package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// JobProfile is the read-only view of a job posting that the scoring engine consumes.
type JobProfile struct {
	JobID              int64     `json:"job_id" validate:"required,gt=0"`
	Title              string    `json:"title,omitempty" validate:"max=200,no_emoji"`
	Description        string    `json:"description,omitempty"`
	RequiredSkills     []string  `json:"required_skills" validate:"max=100,dive,max=100"`
	MinExperienceYears int       `json:"min_experience_years" validate:"gte=0,lte=60"`
	Status             string    `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
	Embedding          []float64 `json:"embedding,omitempty" validate:"omitempty,dive,finite"`
	// EmbeddingCreatedAt is zero when the job has no embedding yet.
	EmbeddingCreatedAt time.Time `json:"embedding_created_at,omitempty"`
}

// Closed reports whether the job is no longer eligible for matching.
func (j JobProfile) Closed() bool {
	return j.Status == JobStatusClosed
}

// JobProfileRepository defines read access to job postings for matching
type JobProfileRepository interface {
	GetProfile(ctx context.Context, jobID int64) (*JobProfile, error)
	ListOpenProfiles(ctx context.Context, limit int) ([]JobProfile, error)
}
