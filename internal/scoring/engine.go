package scoring

import (
	"context"
	"fmt"

	"go-match-backend/internal/domain"
)

// Outcome is the per-pair result of a batch scoring call. CandidateID and
// JobID are always set, even when Err is.
type Outcome struct {
	CandidateID string
	JobID       int64
	Result      domain.MatchResult
	Err         error
}

// Score computes the match between one candidate and one job.
func Score(c domain.CandidateProfile, j domain.JobProfile) (domain.MatchResult, error) {
	if j.Closed() {
		return domain.MatchResult{}, fmt.Errorf("%w: job %d", ErrJobClosed, j.JobID)
	}

	semantic, available, err := SemanticScore(c.Embedding, j.Embedding)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("candidate %s, job %d: %w", c.CandidateID, j.JobID, err)
	}
	skills := SkillScore(j.RequiredSkills, c.Skills)

	b := domain.ScoreBreakdown{
		Experience: ExperienceScore(c.ExperienceYears, j.MinExperienceYears),
		Skills:     skills.Score,
		Projects:   ProjectScore(j.RequiredSkills, c.Projects),
		Semantic:   semantic,
	}

	return domain.MatchResult{
		CandidateID:       c.CandidateID,
		JobID:             j.JobID,
		Overall:           Aggregate(b),
		Breakdown:         b,
		SemanticAvailable: available,
		MatchedSkills:     skills.Matched,
		MissingSkills:     skills.Missing,
		Explanation:       Explain(b, available, skills.Missing),
	}, nil
}

// ScoreCandidates scores every candidate against one job using at most
// workers goroutines. Outcomes are in input order; a failed pair does not
// stop the others.
func ScoreCandidates(ctx context.Context, job domain.JobProfile, candidates []domain.CandidateProfile, workers int) ([]Outcome, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates for job %d", ErrEmptyInput, job.JobID)
	}
	if job.Closed() {
		return nil, fmt.Errorf("%w: job %d", ErrJobClosed, job.JobID)
	}

	out := make([]Outcome, len(candidates))
	err := forEach(ctx, len(candidates), workers, func(i int) {
		r, err := Score(candidates[i], job)
		out[i] = Outcome{CandidateID: candidates[i].CandidateID, JobID: job.JobID, Result: r, Err: err}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScoreJobs scores one candidate against many jobs. Closed jobs come back
// as failed outcomes rather than aborting the batch.
func ScoreJobs(ctx context.Context, candidate domain.CandidateProfile, jobs []domain.JobProfile, workers int) ([]Outcome, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs available", ErrEmptyInput)
	}

	out := make([]Outcome, len(jobs))
	err := forEach(ctx, len(jobs), workers, func(i int) {
		r, err := Score(candidate, jobs[i])
		out[i] = Outcome{CandidateID: candidate.CandidateID, JobID: jobs[i].JobID, Result: r, Err: err}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Split separates successful results from failures.
func Split(outcomes []Outcome) (results []domain.MatchResult, failed []Outcome) {
	results = make([]domain.MatchResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
			continue
		}
		results = append(results, o.Result)
	}
	return results, failed
}
