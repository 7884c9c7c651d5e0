package resilient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/repository/resilient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmbeddingRepo struct {
	mock.Mock
}

func (m *MockEmbeddingRepo) LatestFor(ctx context.Context, subjectType domain.SubjectType, subjectID string) (*domain.Embedding, error) {
	args := m.Called(ctx, subjectType, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Embedding), args.Error(1)
}

func (m *MockEmbeddingRepo) AllJobEmbeddings(ctx context.Context, filter domain.JobEmbeddingFilter) ([]domain.JobEmbedding, []domain.SkippedEmbedding, error) {
	args := m.Called(ctx, filter)
	var (
		e []domain.JobEmbedding
		s []domain.SkippedEmbedding
	)
	if args.Get(0) != nil {
		e = args.Get(0).([]domain.JobEmbedding)
	}
	if args.Get(1) != nil {
		s = args.Get(1).([]domain.SkippedEmbedding)
	}
	return e, s, args.Error(2)
}

func (m *MockEmbeddingRepo) Save(ctx context.Context, e *domain.Embedding) error {
	return m.Called(ctx, e).Error(0)
}

func newRepo(next domain.EmbeddingRepository) domain.EmbeddingRepository {
	return resilient.NewEmbeddingRepository(next, resilient.BreakerSettings{
		Name:         "test-" + time.Now().Format(time.RFC3339Nano),
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBreakerEmbeddingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pass results through", func(t *testing.T) {
		next := new(MockEmbeddingRepo)
		want := &domain.Embedding{ID: 9, SubjectID: "u1", Vector: []float64{1}}
		next.On("LatestFor", ctx, domain.SubjectResume, "u1").Return(want, nil)
		next.On("AllJobEmbeddings", ctx, domain.JobEmbeddingFilter{OnlyOpen: true}).
			Return([]domain.JobEmbedding{{JobID: 1}}, []domain.SkippedEmbedding{{SubjectID: "2", Reason: "empty embedding"}}, nil)

		repo := newRepo(next)
		got, err := repo.LatestFor(ctx, domain.SubjectResume, "u1")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		jobs, skipped, err := repo.AllJobEmbeddings(ctx, domain.JobEmbeddingFilter{OnlyOpen: true})
		require.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Len(t, skipped, 1)
	})

	t.Run("Should not trip on not found", func(t *testing.T) {
		next := new(MockEmbeddingRepo)
		next.On("LatestFor", ctx, domain.SubjectResume, "ghost").Return(nil, domain.ErrNotFound)

		repo := newRepo(next)
		for i := 0; i < 10; i++ {
			_, err := repo.LatestFor(ctx, domain.SubjectResume, "ghost")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
		next.AssertNumberOfCalls(t, "LatestFor", 10)
	})

	t.Run("Should open after repeated failures", func(t *testing.T) {
		next := new(MockEmbeddingRepo)
		boom := errors.New("connection refused")
		next.On("LatestFor", ctx, domain.SubjectJob, "1").Return(nil, boom)

		repo := newRepo(next)
		for i := 0; i < 3; i++ {
			_, err := repo.LatestFor(ctx, domain.SubjectJob, "1")
			assert.ErrorIs(t, err, boom)
		}

		_, err := repo.LatestFor(ctx, domain.SubjectJob, "1")
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		next.AssertNumberOfCalls(t, "LatestFor", 3)
	})
}
