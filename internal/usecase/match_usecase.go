package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/repository/rediscache"
	"go-match-backend/internal/scoring"
	"go-match-backend/pkg/apperror"
	"go-match-backend/pkg/logger"
	"go-match-backend/pkg/metrics"
	"go-match-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Operation labels used for metrics and logs
const (
	opScore     = "score"
	opRank      = "rank"
	opBulk      = "bulk_decide"
	opRecommend = "recommend"
)

// recommendationPool caps how many open jobs are considered for one candidate.
const recommendationPool = 1000

type matchUsecase struct {
	jobRepo       domain.JobProfileRepository
	candidateRepo domain.CandidateRepository
	appRepo       domain.ApplicationRepository
	embeddingRepo domain.EmbeddingRepository
	cache         domain.MatchResultCache
	validate      *validator.Validate
	workers       int
	maxTopN       int
}

// NewMatchUsecase creates the matching usecase. workers bounds the goroutines
// used per batch and maxTopN caps every requested list size.
func NewMatchUsecase(
	jobRepo domain.JobProfileRepository,
	candidateRepo domain.CandidateRepository,
	appRepo domain.ApplicationRepository,
	embeddingRepo domain.EmbeddingRepository,
	cache domain.MatchResultCache,
	validate *validator.Validate,
	workers, maxTopN int,
) domain.MatchUsecase {
	if cache == nil {
		cache = rediscache.NewMatchCache(nil, 0, nil)
	}
	if workers < 1 {
		workers = 1
	}
	return &matchUsecase{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		appRepo:       appRepo,
		embeddingRepo: embeddingRepo,
		cache:         cache,
		validate:      validate,
		workers:       workers,
		maxTopN:       maxTopN,
	}
}

// ScoreProfiles scores caller-supplied profiles without touching storage.
func (u *matchUsecase) ScoreProfiles(ctx context.Context, candidate domain.CandidateProfile, job domain.JobProfile) (*domain.MatchResult, error) {
	if err := u.validate.Struct(candidate); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	if err := u.validate.Struct(job); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	r, err := scoring.Score(candidate, job)
	if err != nil {
		return nil, err
	}
	metrics.ObserveScore(opScore, r.Overall)
	return &r, nil
}

// ScoreApplication scores one applicant of a job.
func (u *matchUsecase) ScoreApplication(ctx context.Context, jobID int64, candidateID string) (*domain.MatchResult, error) {
	job, err := u.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Closed() {
		return nil, fmt.Errorf("%w: job %d", scoring.ErrJobClosed, jobID)
	}

	apps, err := u.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	applied := false
	for _, a := range apps {
		if a.CandidateUserID == candidateID {
			applied = true
			break
		}
	}
	if !applied {
		return nil, apperror.NotFound("This candidate has not applied to the job")
	}

	candidate, err := u.loadCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		return nil, err
	}

	key := cacheKey(*candidate, *job)
	if r, ok := u.cache.Get(ctx, key); ok {
		return r, nil
	}
	r, err := scoring.Score(*candidate, *job)
	if err != nil {
		return nil, err
	}
	metrics.ObserveScore(opScore, r.Overall)
	u.cache.Set(ctx, key, &r)
	return &r, nil
}

// RankApplicants scores every applicant and returns the top N.
func (u *matchUsecase) RankApplicants(ctx context.Context, jobID int64, topN int) (*domain.RankedApplicants, error) {
	topN = u.capTopN(topN)
	job, results, skipped, err := u.scoreApplicants(ctx, jobID, opRank)
	if err != nil {
		return nil, err
	}

	ranked, err := scoring.Rank(results, topN)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("applicants ranked",
		"job_id", job.JobID, "scored", len(results), "skipped", len(skipped), "top_n", topN)
	return &domain.RankedApplicants{
		JobID:   job.JobID,
		TopN:    topN,
		Total:   len(results),
		Results: ranked,
		Skipped: skipped,
	}, nil
}

// BulkDecide selects the top N applicants, rejects the rest and persists both
// sets in one transaction. Applicants that could not be scored stay pending.
func (u *matchUsecase) BulkDecide(ctx context.Context, jobID int64, topN int) (*domain.BulkDecisionReport, error) {
	job, results, skipped, err := u.scoreApplicants(ctx, jobID, opBulk)
	if err != nil {
		return nil, err
	}

	d, err := scoring.BulkDecide(results, topN)
	if err != nil {
		return nil, err
	}

	if len(d.Selected)+len(d.Rejected) > 0 {
		if err := u.appRepo.BulkUpdateStatus(ctx, job.JobID, d.Selected, d.Rejected); err != nil {
			return nil, apperror.Internal(fmt.Errorf("failed to update application statuses: %w", err))
		}
	}

	logger.Log.Info("bulk decision applied",
		"job_id", job.JobID, "selected", len(d.Selected), "rejected", len(d.Rejected), "skipped", len(skipped))
	return &domain.BulkDecisionReport{
		JobID:         job.JobID,
		TopN:          topN,
		Selected:      d.Selected,
		Rejected:      d.Rejected,
		SelectedCount: len(d.Selected),
		RejectedCount: len(d.Rejected),
		Skipped:       skipped,
	}, nil
}

// RecommendJobs ranks open jobs for a candidate. The candidate's own resume
// embedding is required; jobs without a usable embedding are reported as
// skipped.
func (u *matchUsecase) RecommendJobs(ctx context.Context, candidateID string, topN int) (*domain.JobRecommendations, error) {
	topN = u.capTopN(topN)

	candidate, err := u.candidateRepo.GetProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Please complete your candidate profile first")
		}
		return nil, err
	}

	emb, err := u.embeddingRepo.LatestFor(ctx, domain.SubjectResume, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Please upload your resume first")
		}
		return nil, err
	}
	if len(emb.Vector) != domain.EmbeddingDimension {
		return nil, fmt.Errorf("%w: resume embedding has %d dimensions, want %d",
			scoring.ErrDimensionMismatch, len(emb.Vector), domain.EmbeddingDimension)
	}
	candidate.Embedding = emb.Vector
	candidate.EmbeddingCreatedAt = emb.CreatedAt

	jobs, err := u.jobRepo.ListOpenProfiles(ctx, recommendationPool)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(jobs) == 0 {
		return nil, apperror.New(http.StatusNotFound, "No jobs available", scoring.ErrEmptyInput)
	}

	ids := make([]int64, len(jobs))
	for i, j := range jobs {
		ids[i] = j.JobID
	}
	vectors, bad, err := u.embeddingRepo.AllJobEmbeddings(ctx, domain.JobEmbeddingFilter{JobIDs: ids, OnlyOpen: true})
	if err != nil {
		return nil, err
	}

	var skipped []domain.SkippedItem
	for _, s := range bad {
		jobID, _ := strconv.ParseInt(s.SubjectID, 10, 64)
		skipped = append(skipped, domain.SkippedItem{JobID: jobID, Reason: s.Reason})
		metrics.ObserveSkip(opRecommend, metrics.ReasonMalformed)
	}
	byJob := make(map[int64]domain.JobEmbedding, len(vectors))
	for _, v := range vectors {
		byJob[v.JobID] = v
	}
	reported := make(map[int64]bool, len(skipped))
	for _, s := range skipped {
		reported[s.JobID] = true
	}

	eligible := make([]domain.JobProfile, 0, len(jobs))
	for _, j := range jobs {
		v, ok := byJob[j.JobID]
		if !ok {
			if !reported[j.JobID] {
				skipped = append(skipped, domain.SkippedItem{JobID: j.JobID, Reason: "job has no embedding yet"})
				metrics.ObserveSkip(opRecommend, metrics.ReasonNotFound)
			}
			continue
		}
		j.Embedding = v.Vector
		j.EmbeddingCreatedAt = v.CreatedAt
		eligible = append(eligible, j)
	}
	if len(eligible) == 0 {
		return nil, apperror.New(http.StatusNotFound, "No jobs available", scoring.ErrEmptyInput)
	}

	results := make([]domain.MatchResult, 0, len(eligible))
	var misses []domain.JobProfile
	for _, j := range eligible {
		if r, ok := u.cache.Get(ctx, cacheKey(*candidate, j)); ok {
			results = append(results, *r)
			continue
		}
		misses = append(misses, j)
	}

	if len(misses) > 0 {
		outcomes, err := scoring.ScoreJobs(ctx, *candidate, misses, u.workers)
		if err != nil {
			return nil, err
		}
		for i, o := range outcomes {
			if o.Err != nil {
				logger.Log.Warn("job skipped during recommendation",
					"candidate_id", candidateID, "job_id", o.JobID, "error", o.Err)
				metrics.ObserveSkip(opRecommend, skipReason(o.Err))
				skipped = append(skipped, domain.SkippedItem{JobID: o.JobID, Reason: o.Err.Error()})
				continue
			}
			r := o.Result
			metrics.ObserveScore(opRecommend, r.Overall)
			u.cache.Set(ctx, cacheKey(*candidate, misses[i]), &r)
			results = append(results, r)
		}
	}

	ranked, err := scoring.Rank(results, topN)
	if err != nil {
		return nil, err
	}
	return &domain.JobRecommendations{CandidateID: candidateID, Results: ranked, Skipped: skipped}, nil
}

// StoreEmbedding validates and inserts a new embedding for an existing
// resume or job. The previous embedding stays in place and is superseded by
// creation time, which also retires cached results keyed on it.
func (u *matchUsecase) StoreEmbedding(ctx context.Context, e *domain.Embedding) (*domain.Embedding, error) {
	if err := u.validate.Struct(e); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	switch e.SubjectType {
	case domain.SubjectJob:
		jobID, err := strconv.ParseInt(e.SubjectID, 10, 64)
		if err != nil || jobID <= 0 {
			return nil, apperror.BadRequest("Job embeddings need a numeric subject_id")
		}
		if _, err := u.jobRepo.GetProfile(ctx, jobID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Job not found")
			}
			return nil, err
		}
	case domain.SubjectResume:
		if _, err := u.candidateRepo.GetProfile(ctx, e.SubjectID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Candidate profile not found")
			}
			return nil, err
		}
	}

	if err := u.embeddingRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	logger.Log.Info("embedding stored",
		"subject_type", e.SubjectType, "subject_id", e.SubjectID, "id", e.ID, "model", e.Model)
	return e, nil
}

// scoreApplicants loads a job and scores all of its applicants. Per-applicant
// failures are logged and returned as skipped items.
func (u *matchUsecase) scoreApplicants(ctx context.Context, jobID int64, op string) (*domain.JobProfile, []domain.MatchResult, []domain.SkippedItem, error) {
	job, err := u.loadJob(ctx, jobID)
	if err != nil {
		return nil, nil, nil, err
	}
	if job.Closed() {
		return nil, nil, nil, fmt.Errorf("%w: job %d", scoring.ErrJobClosed, jobID)
	}

	apps, err := u.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, nil, nil, apperror.Internal(err)
	}
	if len(apps) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: job %d has no applications", scoring.ErrEmptyInput, jobID)
	}

	profiles := make([]*domain.CandidateProfile, len(apps))
	loadErrs := make([]error, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, a := range apps {
		g.Go(func() error {
			profiles[i], loadErrs[i] = u.loadCandidate(gctx, a.CandidateUserID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	var (
		results = make([]domain.MatchResult, 0, len(apps))
		skipped []domain.SkippedItem
		misses  []domain.CandidateProfile
	)
	for i, a := range apps {
		if loadErrs[i] != nil {
			logger.Log.Warn("applicant skipped",
				"job_id", jobID, "candidate_id", a.CandidateUserID, "error", loadErrs[i])
			metrics.ObserveSkip(op, skipReason(loadErrs[i]))
			skipped = append(skipped, domain.SkippedItem{CandidateID: a.CandidateUserID, JobID: jobID, Reason: loadErrs[i].Error()})
			continue
		}
		if r, ok := u.cache.Get(ctx, cacheKey(*profiles[i], *job)); ok {
			results = append(results, *r)
			continue
		}
		misses = append(misses, *profiles[i])
	}

	if len(misses) > 0 {
		outcomes, err := scoring.ScoreCandidates(ctx, *job, misses, u.workers)
		if err != nil {
			return nil, nil, nil, err
		}
		for i, o := range outcomes {
			if o.Err != nil {
				logger.Log.Warn("applicant skipped",
					"job_id", jobID, "candidate_id", o.CandidateID, "error", o.Err)
				metrics.ObserveSkip(op, skipReason(o.Err))
				skipped = append(skipped, domain.SkippedItem{CandidateID: o.CandidateID, JobID: jobID, Reason: o.Err.Error()})
				continue
			}
			r := o.Result
			metrics.ObserveScore(op, r.Overall)
			u.cache.Set(ctx, cacheKey(misses[i], *job), &r)
			results = append(results, r)
		}
	}

	return job, results, skipped, nil
}

// loadJob returns the job with its latest embedding attached when one exists.
func (u *matchUsecase) loadJob(ctx context.Context, jobID int64) (*domain.JobProfile, error) {
	job, err := u.jobRepo.GetProfile(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}

	emb, err := u.embeddingRepo.LatestFor(ctx, domain.SubjectJob, strconv.FormatInt(jobID, 10))
	switch {
	case err == nil:
		job.Embedding = emb.Vector
		job.EmbeddingCreatedAt = emb.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
		// scored without the semantic component
	default:
		return nil, err
	}
	return job, nil
}

// loadCandidate returns the candidate with their latest resume embedding
// attached when one exists.
func (u *matchUsecase) loadCandidate(ctx context.Context, candidateID string) (*domain.CandidateProfile, error) {
	c, err := u.candidateRepo.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	emb, err := u.embeddingRepo.LatestFor(ctx, domain.SubjectResume, candidateID)
	switch {
	case err == nil:
		c.Embedding = emb.Vector
		c.EmbeddingCreatedAt = emb.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, err
	}
	return c, nil
}

func (u *matchUsecase) capTopN(topN int) int {
	if u.maxTopN > 0 && topN > u.maxTopN {
		return u.maxTopN
	}
	return topN
}

func cacheKey(c domain.CandidateProfile, j domain.JobProfile) string {
	return rediscache.Key(c.CandidateID, j.JobID, c.EmbeddingCreatedAt, j.EmbeddingCreatedAt)
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, scoring.ErrDimensionMismatch):
		return metrics.ReasonDimensionMismatch
	case errors.Is(err, scoring.ErrJobClosed):
		return metrics.ReasonJobClosed
	default:
		return metrics.ReasonFetchError
	}
}
