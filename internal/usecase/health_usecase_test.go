package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-match-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	t.Run("Should report ok and disabled dependencies", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    nil,
		})

		status, healthy := uc.Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "ok", status["database"])
		assert.Equal(t, "disabled", status["redis"])
	})

	t.Run("Should degrade when a probe fails", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"database": func(context.Context) error { return errors.New("dial tcp db.internal:5432: connection refused") },
		})

		status, healthy := uc.Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "error", status["database"])
		for _, v := range status {
			assert.NotContains(t, v, "db.internal")
		}
	})
}
