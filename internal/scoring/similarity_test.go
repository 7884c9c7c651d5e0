package scoring_test

import (
	"context"
	"math"
	"testing"

	"go-match-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("Should be symmetric", func(t *testing.T) {
		a := []float64{0.1, 0.7, 0.3, 0.9}
		b := []float64{0.5, 0.2, 0.8, 0.4}

		ab, err := scoring.CosineSimilarity(a, b)
		require.NoError(t, err)
		ba, err := scoring.CosineSimilarity(b, a)
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("Should return 1 for self similarity", func(t *testing.T) {
		vectors := [][]float64{
			{1, 2, 3},
			{0.001, 0.0002, 0.5},
			{-1, -2, 4},
			{1e6, 3e5, 7},
		}
		for _, v := range vectors {
			s, err := scoring.CosineSimilarity(v, v)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, s, 1e-9)
		}
	})

	t.Run("Should stay within bounds", func(t *testing.T) {
		pairs := [][2][]float64{
			{{1, 0}, {-1, 0}},
			{{1, 1}, {-1, 0.5}},
			{{3, 4}, {4, 3}},
			{{1, 0}, {0, 1}},
		}
		for _, p := range pairs {
			s, err := scoring.CosineSimilarity(p[0], p[1])
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	})

	t.Run("Should clamp opposite vectors to 0", func(t *testing.T) {
		s, err := scoring.CosineSimilarity([]float64{1, 2}, []float64{-1, -2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, s)
	})

	t.Run("Should return 0 for zero vector", func(t *testing.T) {
		zero := []float64{0, 0, 0}
		s, err := scoring.CosineSimilarity(zero, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, s)
		assert.False(t, math.IsNaN(s))

		s, err = scoring.CosineSimilarity(zero, zero)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s)
	})

	t.Run("Should fail on dimension mismatch", func(t *testing.T) {
		_, err := scoring.CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
		assert.ErrorIs(t, err, scoring.ErrDimensionMismatch)
	})

	t.Run("Should fail on empty vectors", func(t *testing.T) {
		_, err := scoring.CosineSimilarity(nil, []float64{1})
		assert.ErrorIs(t, err, scoring.ErrDimensionMismatch)
		_, err = scoring.CosineSimilarity([]float64{}, []float64{})
		assert.ErrorIs(t, err, scoring.ErrDimensionMismatch)
	})
}

func TestCosineSimilarityBatch(t *testing.T) {
	ref := []float64{1, 0}
	targets := [][]float64{
		{1, 0},
		{1, 2, 3},
		{0, 1},
		nil,
		{0.8, 0.6},
	}

	t.Run("Should keep order and isolate malformed targets", func(t *testing.T) {
		results := scoring.CosineSimilarityBatch(ref, targets)
		require.Len(t, results, len(targets))

		for i, r := range results {
			assert.Equal(t, i, r.Index)
		}
		assert.True(t, results[0].OK())
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
		assert.ErrorIs(t, results[1].Err, scoring.ErrDimensionMismatch)
		assert.True(t, results[2].OK())
		assert.Equal(t, 0.0, results[2].Score)
		assert.ErrorIs(t, results[3].Err, scoring.ErrDimensionMismatch)
		assert.InDelta(t, 0.8, results[4].Score, 1e-9)

		assert.Len(t, scoring.SuccessfulScores(results), 3)
	})

	t.Run("Should match sequential results when run in parallel", func(t *testing.T) {
		seq := scoring.CosineSimilarityBatch(ref, targets)
		par, err := scoring.ParallelSimilarity(context.Background(), ref, targets, 3)
		require.NoError(t, err)
		require.Len(t, par, len(seq))
		for i := range seq {
			assert.Equal(t, seq[i].Index, par[i].Index)
			assert.Equal(t, seq[i].Score, par[i].Score)
			assert.Equal(t, seq[i].OK(), par[i].OK())
		}
	})

	t.Run("Should stop on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := scoring.ParallelSimilarity(ctx, ref, targets, 2)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
