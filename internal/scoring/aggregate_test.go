package scoring_test

import (
	"testing"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Run("Should publish a 40/20/20/20 contract", func(t *testing.T) {
		w := scoring.DefaultWeights
		assert.Equal(t, 0.40, w.Experience)
		assert.Equal(t, 0.20, w.Skills)
		assert.Equal(t, 0.20, w.Projects)
		assert.Equal(t, 0.20, w.Semantic)
		assert.InDelta(t, 1.0, w.Experience+w.Skills+w.Projects+w.Semantic, 1e-12)
	})

	t.Run("Should hit the bounds exactly", func(t *testing.T) {
		assert.Equal(t, 1.0, scoring.Aggregate(domain.ScoreBreakdown{Experience: 1, Skills: 1, Projects: 1, Semantic: 1}))
		assert.Equal(t, 0.0, scoring.Aggregate(domain.ScoreBreakdown{}))
	})

	t.Run("Should stay in range over a grid of inputs", func(t *testing.T) {
		steps := []float64{0, 0.25, 0.5, 0.75, 1}
		for _, e := range steps {
			for _, s := range steps {
				for _, p := range steps {
					for _, m := range steps {
						v := scoring.Aggregate(domain.ScoreBreakdown{Experience: e, Skills: s, Projects: p, Semantic: m})
						assert.GreaterOrEqual(t, v, 0.0)
						assert.LessOrEqual(t, v, 1.0)
					}
				}
			}
		}
	})

	t.Run("Should weight experience double", func(t *testing.T) {
		assert.InDelta(t, 0.4, scoring.Aggregate(domain.ScoreBreakdown{Experience: 1}), 1e-12)
		assert.InDelta(t, 0.2, scoring.Aggregate(domain.ScoreBreakdown{Semantic: 1}), 1e-12)
	})
}

func TestExplain(t *testing.T) {
	b := domain.ScoreBreakdown{Experience: 1, Skills: 0.5, Projects: 0, Semantic: 0.8}

	t.Run("Should name the two strongest factors", func(t *testing.T) {
		got := scoring.Explain(b, true, []string{"aws"})
		assert.Equal(t,
			"Overall 66%. Strongest factors: Experience 100% (weight 40%) and Profile fit 80% (weight 20%). Missing skills: aws.",
			got)
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		assert.Equal(t, scoring.Explain(b, true, nil), scoring.Explain(b, true, nil))
	})

	t.Run("Should break ties in fixed dimension order", func(t *testing.T) {
		got := scoring.Explain(domain.ScoreBreakdown{}, true, nil)
		assert.Contains(t, got, "Experience 0% (weight 40%) and Skills 0% (weight 20%)")
	})

	t.Run("Should flag missing embeddings", func(t *testing.T) {
		got := scoring.Explain(b, false, nil)
		assert.Contains(t, got, "Profile fit not assessed")
	})
}
