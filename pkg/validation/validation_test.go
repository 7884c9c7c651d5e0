package validation_test

import (
	"math"
	"testing"

	"go-match-backend/internal/domain"
	"go-match-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileValidation(t *testing.T) {
	v := validation.New()

	t.Run("Should accept a well-formed job", func(t *testing.T) {
		job := domain.JobProfile{JobID: 1, RequiredSkills: []string{"go"}, MinExperienceYears: 2, Embedding: []float64{0.1, 0.2}}
		assert.NoError(t, v.Struct(job))
	})

	t.Run("Should reject negative experience", func(t *testing.T) {
		c := domain.CandidateProfile{CandidateID: "c1", ExperienceYears: -1}
		err := v.Struct(c)
		require.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Contains(t, msgs, "Years of experience: must be at least 0")
	})

	t.Run("Should reject non-finite embeddings", func(t *testing.T) {
		c := domain.CandidateProfile{CandidateID: "c1", Embedding: []float64{0.1, math.NaN()}}
		err := v.Struct(c)
		require.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Contains(t, msgs, "Embedding[1]: must contain only finite numbers")
	})

	t.Run("Should reject emoji in display names", func(t *testing.T) {
		err := v.Struct(domain.JobProfile{JobID: 1, Title: "Backend Engineer 🚀"})
		require.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Title: must not contain emoji or special symbols")

		err = v.Struct(domain.CandidateProfile{CandidateID: "c1", Name: "Ana 😀"})
		require.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Name: must not contain emoji or special symbols")
	})

	t.Run("Should accept accented names", func(t *testing.T) {
		assert.NoError(t, v.Struct(domain.CandidateProfile{CandidateID: "c1", Name: "José Müller-Łukasz"}))
	})

	t.Run("Should require a candidate id", func(t *testing.T) {
		err := v.Struct(domain.CandidateProfile{})
		require.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Candidate ID: is required")
	})
}

func TestEmbeddingValidation(t *testing.T) {
	v := validation.New()

	t.Run("Should enforce the model dimension", func(t *testing.T) {
		err := v.Struct(domain.Embedding{SubjectType: domain.SubjectResume, SubjectID: "c1", Vector: []float64{1, 2}})
		require.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Vector: must have exactly 384 values")
	})

	t.Run("Should reject unknown subject types", func(t *testing.T) {
		err := v.Struct(domain.Embedding{SubjectType: "cover_letter", SubjectID: "c1", Vector: make([]float64, domain.EmbeddingDimension)})
		require.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Subject type: must be one of: resume, job")
	})
}
