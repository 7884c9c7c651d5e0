package scoring_test

import (
	"fmt"
	"testing"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results(pairs ...interface{}) []domain.MatchResult {
	var out []domain.MatchResult
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.MatchResult{CandidateID: pairs[i].(string), Overall: pairs[i+1].(float64)})
	}
	return out
}

func ids(rs []domain.MatchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.CandidateID
	}
	return out
}

func TestRank(t *testing.T) {
	in := results("B", 0.9, "A", 0.9, "C", 0.3)

	t.Run("Should break ties by candidate id", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			got, err := scoring.Rank(in, 2)
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B"}, ids(got))
			assert.Equal(t, 1, got[0].Rank)
			assert.Equal(t, 2, got[1].Rank)
		}
	})

	t.Run("Should break ties between jobs of one candidate by job id", func(t *testing.T) {
		jobs := []domain.MatchResult{
			{CandidateID: "c1", JobID: 5, Overall: 0.6},
			{CandidateID: "c1", JobID: 9, Overall: 0.8},
			{CandidateID: "c1", JobID: 3, Overall: 0.6},
		}
		got, err := scoring.Rank(jobs, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{9, 3, 5}, []int64{got[0].JobID, got[1].JobID, got[2].JobID})
	})

	t.Run("Should not mutate the input", func(t *testing.T) {
		_, err := scoring.Rank(in, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A", "C"}, ids(in))
		assert.Zero(t, in[0].Rank)
	})

	t.Run("Should return fewer when input is small", func(t *testing.T) {
		got, err := scoring.Rank(in, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, ids(got))
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		first, err := scoring.Rank(in, 3)
		require.NoError(t, err)
		second, err := scoring.Rank(in, 3)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Should reject non-positive topN", func(t *testing.T) {
		_, err := scoring.Rank(in, 0)
		assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
		_, err = scoring.Rank(in, -1)
		assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
	})
}

func TestBulkDecide(t *testing.T) {
	in := results("d", 0.1, "b", 0.7, "a", 0.7, "c", 0.95, "e", 0.4)

	t.Run("Should select the top of the ranking", func(t *testing.T) {
		d, err := scoring.BulkDecide(in, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, d.Selected)
		assert.Equal(t, []string{"b", "e", "d"}, d.Rejected)
	})

	t.Run("Should be total and disjoint for every topN", func(t *testing.T) {
		for topN := 0; topN <= len(in)+1; topN++ {
			t.Run(fmt.Sprintf("topN=%d", topN), func(t *testing.T) {
				d, err := scoring.BulkDecide(in, topN)
				require.NoError(t, err)
				assert.Equal(t, len(in), len(d.Selected)+len(d.Rejected))

				seen := map[string]int{}
				for _, id := range append(append([]string{}, d.Selected...), d.Rejected...) {
					seen[id]++
				}
				for _, r := range in {
					assert.Equal(t, 1, seen[r.CandidateID], r.CandidateID)
				}
			})
		}
	})

	t.Run("Should reject everyone when topN is 0", func(t *testing.T) {
		d, err := scoring.BulkDecide(in, 0)
		require.NoError(t, err)
		assert.Empty(t, d.Selected)
		assert.Len(t, d.Rejected, len(in))
	})

	t.Run("Should select everyone when topN covers all", func(t *testing.T) {
		d, err := scoring.BulkDecide(in, len(in))
		require.NoError(t, err)
		assert.Len(t, d.Selected, len(in))
		assert.Empty(t, d.Rejected)
	})

	t.Run("Should reject negative topN", func(t *testing.T) {
		_, err := scoring.BulkDecide(in, -1)
		assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
	})

	t.Run("Should reject duplicate candidates", func(t *testing.T) {
		_, err := scoring.BulkDecide(results("a", 0.5, "a", 0.4), 1)
		assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
	})

	t.Run("Should handle empty input", func(t *testing.T) {
		d, err := scoring.BulkDecide(nil, 3)
		require.NoError(t, err)
		assert.Empty(t, d.Selected)
		assert.Empty(t, d.Rejected)
	})
}
