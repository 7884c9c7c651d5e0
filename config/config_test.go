package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, cfg.MatchCacheTTL)
		assert.Equal(t, 0.6, cfg.BreakerFailureRatio)
		assert.Greater(t, cfg.ScoringWorkers, 0)
	})

	t.Run("Should read overrides and sanitize", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
		t.Setenv("SCORING_WORKERS", "-2")
		t.Setenv("DEFAULT_TOP_N", "25")
		t.Setenv("MAX_TOP_N", "5")
		t.Setenv("BREAKER_FAILURE_RATIO", "0.25")
		t.Setenv("METRICS_ENABLED", "false")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseUrl)
		assert.Equal(t, 1, cfg.ScoringWorkers)
		assert.Equal(t, 25, cfg.DefaultTopN)
		assert.Equal(t, 25, cfg.MaxTopN)
		assert.Equal(t, 0.25, cfg.BreakerFailureRatio)
		assert.False(t, cfg.MetricsEnabled)
	})
}

func TestScoringRateLimit(t *testing.T) {
	t.Run("Should fall back when the limit is not positive", func(t *testing.T) {
		t.Setenv("SCORING_RATE_LIMIT_PER_MINUTE", "0")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.ScoringRateLimit)
	})
}
