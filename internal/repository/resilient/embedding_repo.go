// Package resilient wraps repositories with circuit breakers.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-match-backend/internal/domain"
	"go-match-backend/pkg/metrics"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the embedding store breaker.
type BreakerSettings struct {
	Name         string
	MaxRequests  uint32        // probes allowed while half-open
	Interval     time.Duration // closed-state counter reset period
	Timeout      time.Duration // open-state duration before probing
	MinRequests  uint32
	FailureRatio float64
}

type embeddingRepo struct {
	next domain.EmbeddingRepository
	cb   *gobreaker.CircuitBreaker[any]
	log  *slog.Logger
}

// NewEmbeddingRepository decorates next with a circuit breaker. NotFound is a
// normal answer and does not count as a failure; context cancellation by the
// caller does not either.
func NewEmbeddingRepository(next domain.EmbeddingRepository, s BreakerSettings, log *slog.Logger) domain.EmbeddingRepository {
	if s.Name == "" {
		s.Name = "embedding-store"
	}
	r := &embeddingRepo{next: next, log: log}
	r.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests || counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	})
	metrics.BreakerState.WithLabelValues(s.Name).Set(float64(gobreaker.StateClosed))
	return r
}

func (r *embeddingRepo) LatestFor(ctx context.Context, subjectType domain.SubjectType, subjectID string) (*domain.Embedding, error) {
	v, err := r.cb.Execute(func() (any, error) {
		return r.next.LatestFor(ctx, subjectType, subjectID)
	})
	if err != nil {
		return nil, translate(err)
	}
	return v.(*domain.Embedding), nil
}

type jobEmbeddings struct {
	embeddings []domain.JobEmbedding
	skipped    []domain.SkippedEmbedding
}

func (r *embeddingRepo) AllJobEmbeddings(ctx context.Context, filter domain.JobEmbeddingFilter) ([]domain.JobEmbedding, []domain.SkippedEmbedding, error) {
	v, err := r.cb.Execute(func() (any, error) {
		e, s, err := r.next.AllJobEmbeddings(ctx, filter)
		return jobEmbeddings{embeddings: e, skipped: s}, err
	})
	if err != nil {
		return nil, nil, translate(err)
	}
	res := v.(jobEmbeddings)
	return res.embeddings, res.skipped, nil
}

func (r *embeddingRepo) Save(ctx context.Context, e *domain.Embedding) error {
	_, err := r.cb.Execute(func() (any, error) {
		return nil, r.next.Save(ctx, e)
	})
	return translate(err)
}

func translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("embedding store: %w: %v", domain.ErrUnavailable, err)
	}
	return err
}
