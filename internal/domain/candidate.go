package domain

import (
	"context"
	"time"
)

// CandidateProfile holds the resume-derived features of a candidate.
type CandidateProfile struct {
	CandidateID     string    `json:"candidate_id" validate:"required,max=64"`
	Name            string    `json:"name,omitempty" validate:"max=200,no_emoji"`
	Skills          []string  `json:"skills" validate:"max=200,dive,max=100"`
	ExperienceYears float64   `json:"experience_years" validate:"gte=0,lte=80"`
	Projects        []string  `json:"projects,omitempty" validate:"max=100"`
	Embedding       []float64 `json:"embedding,omitempty" validate:"omitempty,dive,finite"`
	// EmbeddingCreatedAt is zero when no resume embedding exists.
	EmbeddingCreatedAt time.Time `json:"embedding_created_at,omitempty"`
}

// HasEmbedding reports whether a resume embedding is attached.
func (c CandidateProfile) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

type CandidateRepository interface {
	GetProfile(ctx context.Context, candidateID string) (*CandidateProfile, error)
}
