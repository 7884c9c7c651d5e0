package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-match-backend/internal/delivery/http/middleware"
	"go-match-backend/internal/delivery/http/response"
	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"
	"go-match-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC     domain.MatchUsecase
	defaultTopN int
	maxTopN     int
}

// MatchHandlerOptions carries list-size limits and the limiter applied to
// the batch scoring routes.
type MatchHandlerOptions struct {
	DefaultTopN int
	MaxTopN     int
	RateLimit   gin.HandlerFunc
}

// NewMatchHandler registers matching routes
func NewMatchHandler(public, protected *gin.RouterGroup, matchUC domain.MatchUsecase, opts MatchHandlerOptions) {
	handler := &MatchHandler{
		matchUC:     matchUC,
		defaultTopN: opts.DefaultTopN,
		maxTopN:     opts.MaxTopN,
	}
	limit := opts.RateLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	public.GET("/matching/weights", handler.GetWeights)
	protected.POST("/matching/score", limit, handler.ScoreProfiles)

	// Employer routes
	employers := protected.Group("/employers", middleware.RequireRole(middleware.RoleEmployer, middleware.RoleAdmin))
	{
		employers.GET("/jobs/:jobId/applications/:candidateId/match", handler.ScoreApplication)
		employers.GET("/jobs/:jobId/ranking", limit, handler.RankApplicants)
		employers.POST("/jobs/:jobId/bulk-decide", limit, handler.BulkDecide)
		employers.GET("/jobs/:jobId/shortlist/export", limit, handler.ExportShortlist)
	}

	// Candidate routes
	candidates := protected.Group("/candidates", middleware.RequireRole(middleware.RoleCandidate))
	{
		candidates.GET("/recommendations", limit, handler.RecommendJobs)
	}

	// Parsing pipeline ingest
	protected.POST("/embeddings", middleware.RequireRole(middleware.RoleAdmin), handler.StoreEmbedding)
}

// ScoreRequest is the payload for stateless scoring
type ScoreRequest struct {
	Candidate domain.CandidateProfile `json:"candidate"`
	Job       domain.JobProfile       `json:"job"`
}

// BulkDecideRequest is the payload for a bulk select/reject
type BulkDecideRequest struct {
	TopN *int `json:"top_n" binding:"required,gte=0"`
}

// GetWeights godoc
// @Summary      Get scoring weights
// @Description  Returns the fixed weights used to combine the four sub-scores
// @Tags         matching
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.MatchWeights}
// @Router       /matching/weights [get]
func (h *MatchHandler) GetWeights(c *gin.Context) {
	response.Success(c, http.StatusOK, "Scoring weights", scoring.DefaultWeights)
}

// ScoreProfiles godoc
// @Summary      Score a candidate against a job
// @Description  Stateless scoring of the supplied profiles. Nothing is read from or written to storage.
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        body  body      ScoreRequest  true  "Candidate and job profiles"
// @Success      200   {object}  response.Response{data=domain.MatchResult}
// @Failure      400   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /matching/score [post]
// @Security     BearerAuth
func (h *MatchHandler) ScoreProfiles(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.matchUC.ScoreProfiles(c.Request.Context(), req.Candidate, req.Job)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match scored", result)
}

// ScoreApplication godoc
// @Summary      Score one applicant
// @Description  Scores a candidate who applied to the job (Employer only)
// @Tags         matching
// @Produce      json
// @Param        jobId        path      int     true  "Job ID"
// @Param        candidateId  path      string  true  "Candidate user ID"
// @Success      200          {object}  response.Response{data=domain.MatchResult}
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications/{candidateId}/match [get]
// @Security     BearerAuth
func (h *MatchHandler) ScoreApplication(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	result, err := h.matchUC.ScoreApplication(c.Request.Context(), jobID, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match scored", result)
}

// RankApplicants godoc
// @Summary      Rank applicants
// @Description  Scores all applicants of a job and returns the top N. Applicants that could not be scored are listed under skipped.
// @Tags         matching
// @Produce      json
// @Param        jobId  path      int  true   "Job ID"
// @Param        top_n  query     int  false  "Number of results"
// @Success      200    {object}  response.Response{data=domain.RankedApplicants}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/ranking [get]
// @Security     BearerAuth
func (h *MatchHandler) RankApplicants(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}
	topN, ok := h.parseTopN(c)
	if !ok {
		return
	}

	ranked, err := h.matchUC.RankApplicants(c.Request.Context(), jobID, topN)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants ranked", ranked)
}

// BulkDecide godoc
// @Summary      Bulk select applicants
// @Description  Marks the top N applicants as selected and every other scored applicant as rejected
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                true  "Job ID"
// @Param        body   body      BulkDecideRequest  true  "Number of applicants to select"
// @Success      200    {object}  response.Response{data=domain.BulkDecisionReport}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /employers/jobs/{jobId}/bulk-decide [post]
// @Security     BearerAuth
func (h *MatchHandler) BulkDecide(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	var req BulkDecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("top_n is required and must not be negative"))
		return
	}

	report, err := h.matchUC.BulkDecide(c.Request.Context(), jobID, *req.TopN)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications updated", report)
}

// ExportShortlist godoc
// @Summary      Export shortlist
// @Description  Downloads the ranked applicants as Excel or CSV
// @Tags         matching
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        jobId   path      int     true   "Job ID"
// @Param        top_n   query     int     false  "Number of results"
// @Param        format  query     string  false  "xlsx or csv"  default(xlsx)
// @Success      200     {file}    binary
// @Failure      400     {object}  response.Response
// @Router       /employers/jobs/{jobId}/shortlist/export [get]
// @Security     BearerAuth
func (h *MatchHandler) ExportShortlist(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}
	topN, ok := h.parseTopN(c)
	if !ok {
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))

	data, filename, err := h.matchUC.ExportShortlist(c.Request.Context(), jobID, topN, format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == "csv" {
		contentType = "text/csv"
	}

	response.Attachment(c, filename, contentType, data)
}

// RecommendJobs godoc
// @Summary      Recommended jobs
// @Description  Ranks open jobs for the current candidate. Requires an uploaded resume.
// @Tags         matching
// @Produce      json
// @Param        top_n  query     int  false  "Number of results"
// @Success      200    {object}  response.Response{data=domain.JobRecommendations}
// @Failure      404    {object}  response.Response
// @Router       /candidates/recommendations [get]
// @Security     BearerAuth
func (h *MatchHandler) RecommendJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	topN, ok := h.parseTopN(c)
	if !ok {
		return
	}

	recs, err := h.matchUC.RecommendJobs(c.Request.Context(), userID, topN)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommendations retrieved", recs)
}

// StoreEmbedding godoc
// @Summary      Store an embedding
// @Description  Inserts a new resume or job embedding (Admin only). Older embeddings are superseded, never updated.
// @Tags         matching
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Embedding  true  "Embedding"
// @Success      201   {object}  response.Response{data=domain.Embedding}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /embeddings [post]
// @Security     BearerAuth
func (h *MatchHandler) StoreEmbedding(c *gin.Context) {
	var e domain.Embedding
	if err := c.ShouldBindJSON(&e); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	stored, err := h.matchUC.StoreEmbedding(c.Request.Context(), &e)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Embedding stored", stored)
}

func parseJobID(c *gin.Context) (int64, bool) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || jobID <= 0 {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return 0, false
	}
	return jobID, true
}

func (h *MatchHandler) parseTopN(c *gin.Context) (int, bool) {
	raw := c.Query("top_n")
	if raw == "" {
		return h.defaultTopN, true
	}
	topN, err := strconv.Atoi(raw)
	if err != nil || topN < 1 {
		c.Error(apperror.BadRequest("top_n must be a positive integer"))
		return 0, false
	}
	if h.maxTopN > 0 && topN > h.maxTopN {
		c.Error(apperror.BadRequest(fmt.Sprintf("top_n must not exceed %d", h.maxTopN)))
		return 0, false
	}
	return topN, true
}
