package domain

import (
	"context"
	"time"
)

// Application status constants. These double as the shortlist decision
// assigned during a bulk update.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusSelected = "selected"
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application from a candidate
type Application struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	CandidateUserID string    `json:"candidate_user_id"`
	CvURL           string    `json:"cv_url"`
	Status          string    `json:"status"` // pending → selected / rejected
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	CandidateName *string `json:"candidate_name,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	// BulkUpdateStatus marks the given candidates selected/rejected for one job atomically.
	BulkUpdateStatus(ctx context.Context, jobID int64, selected, rejected []string) error
}
