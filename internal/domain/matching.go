package domain

import "context"

// ScoreBreakdown holds the four weighted sub-scores, each in [0,1].
type ScoreBreakdown struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Projects   float64 `json:"projects"`
	Semantic   float64 `json:"semantic"`
}

// MatchResult is produced fresh on every scoring call and never mutated in place.
type MatchResult struct {
	CandidateID string         `json:"candidate_id"`
	JobID       int64          `json:"job_id"`
	Overall     float64        `json:"overall"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	// SemanticAvailable is false when either side had no embedding, so a
	// missing-data semantic score of 0 can be told apart from a real one.
	SemanticAvailable bool     `json:"semantic_available"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	Explanation       string   `json:"explanation"`
	Rank              int      `json:"rank,omitempty"`
}

// ShortlistDecision is the classification assigned by a bulk update.
type ShortlistDecision string

const (
	DecisionPending  ShortlistDecision = ApplicationStatusPending
	DecisionSelected ShortlistDecision = ApplicationStatusSelected
	DecisionRejected ShortlistDecision = ApplicationStatusRejected
)

// SkippedItem records one element of a batch that could not be scored.
type SkippedItem struct {
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       int64  `json:"job_id,omitempty"`
	Reason      string `json:"reason"`
}

// RankedApplicants is the ranking of one job's applicants.
type RankedApplicants struct {
	JobID   int64         `json:"job_id"`
	TopN    int           `json:"top_n"`
	Total   int           `json:"total"`
	Results []MatchResult `json:"results"`
	Skipped []SkippedItem `json:"skipped"`
}

// BulkDecisionReport summarizes a bulk select/reject run.
type BulkDecisionReport struct {
	JobID         int64         `json:"job_id"`
	TopN          int           `json:"top_n"`
	Selected      []string      `json:"selected"`
	Rejected      []string      `json:"rejected"`
	SelectedCount int           `json:"selected_count"`
	RejectedCount int           `json:"rejected_count"`
	Skipped       []SkippedItem `json:"skipped"`
}

// JobRecommendations is the personalized job list for one candidate.
type JobRecommendations struct {
	CandidateID string        `json:"candidate_id"`
	Results     []MatchResult `json:"results"`
	Skipped     []SkippedItem `json:"skipped"`
}

// MatchWeights is the published weight contract.
type MatchWeights struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Projects   float64 `json:"projects"`
	Semantic   float64 `json:"semantic"`
}

// MatchResultCache stores computed results. Keys must change whenever either
// embedding is superseded.
type MatchResultCache interface {
	Get(ctx context.Context, key string) (*MatchResult, bool)
	Set(ctx context.Context, key string, result *MatchResult)
}

// MatchUsecase defines the matching business logic
type MatchUsecase interface {
	// Stateless scoring of caller-supplied profiles
	ScoreProfiles(ctx context.Context, candidate CandidateProfile, job JobProfile) (*MatchResult, error)

	// Employer operations
	ScoreApplication(ctx context.Context, jobID int64, candidateID string) (*MatchResult, error)
	RankApplicants(ctx context.Context, jobID int64, topN int) (*RankedApplicants, error)
	BulkDecide(ctx context.Context, jobID int64, topN int) (*BulkDecisionReport, error)
	ExportShortlist(ctx context.Context, jobID int64, topN int, format string) ([]byte, string, error)

	// Candidate operations
	RecommendJobs(ctx context.Context, candidateID string, topN int) (*JobRecommendations, error)

	// Ingest of vectors produced by the resume/job parsing pipeline
	StoreEmbedding(ctx context.Context, e *Embedding) (*Embedding, error)
}
