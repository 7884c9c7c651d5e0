package scoring

import (
	"fmt"
	"sort"

	"go-match-backend/internal/domain"
)

// Decision partitions candidate IDs into a shortlist and the rest.
type Decision struct {
	Selected []string `json:"selected"`
	Rejected []string `json:"rejected"`
}

// Rank orders results by overall score descending, breaking ties by
// candidate ID and then job ID ascending, and returns the first topN with
// Rank set.
// The input slice is not modified.
func Rank(results []domain.MatchResult, topN int) ([]domain.MatchResult, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: topN must be positive, got %d", ErrInvalidArgument, topN)
	}
	out := ordered(results)
	if topN < len(out) {
		out = out[:topN]
	}
	return out, nil
}

// BulkDecide selects the first topN results by rank and rejects the rest.
// Every input candidate lands in exactly one of the two lists.
func BulkDecide(results []domain.MatchResult, topN int) (Decision, error) {
	if topN < 0 {
		return Decision{}, fmt.Errorf("%w: topN must not be negative, got %d", ErrInvalidArgument, topN)
	}
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if seen[r.CandidateID] {
			return Decision{}, fmt.Errorf("%w: duplicate candidate %q", ErrInvalidArgument, r.CandidateID)
		}
		seen[r.CandidateID] = true
	}

	d := Decision{Selected: []string{}, Rejected: []string{}}
	for i, r := range ordered(results) {
		if i < topN {
			d.Selected = append(d.Selected, r.CandidateID)
		} else {
			d.Rejected = append(d.Rejected, r.CandidateID)
		}
	}
	return d, nil
}

func ordered(results []domain.MatchResult) []domain.MatchResult {
	out := make([]domain.MatchResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		if out[i].CandidateID != out[j].CandidateID {
			return out[i].CandidateID < out[j].CandidateID
		}
		return out[i].JobID < out[j].JobID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
