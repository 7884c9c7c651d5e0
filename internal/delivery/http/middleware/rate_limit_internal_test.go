package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func storedKeys(l *RateLimiter) int {
	n := 0
	l.store.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func TestInMemoryEviction(t *testing.T) {
	cfg := ScoringRateLimitConfig(10)
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Should drop expired windows on the next sweep", func(t *testing.T) {
		l := NewRateLimiter(nil)
		l.checkInMemory("rl:match:user:a", cfg, t0)
		l.checkInMemory("rl:match:user:b", cfg, t0)
		assert.Equal(t, 2, storedKeys(l))

		count, _ := l.checkInMemory("rl:match:user:c", cfg, t0.Add(inMemorySweepInterval+time.Second))
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, storedKeys(l))
	})

	t.Run("Should keep windows that are still open", func(t *testing.T) {
		l := NewRateLimiter(nil)
		l.checkInMemory("rl:match:user:a", cfg, t0)

		later := t0.Add(inMemorySweepInterval + time.Second)
		l.checkInMemory("rl:match:user:b", ScoringRateLimitConfig(10), later)
		count, _ := l.checkInMemory("rl:match:user:b", cfg, later.Add(time.Second))
		assert.Equal(t, 2, count)
		assert.Equal(t, 1, storedKeys(l))
	})

	t.Run("Should not sweep more than once per interval", func(t *testing.T) {
		l := NewRateLimiter(nil)
		l.checkInMemory("rl:match:user:a", cfg, t0)

		// a's window has ended but the next sweep is not due yet
		l.checkInMemory("rl:match:user:b", cfg, t0.Add(2*time.Minute))
		assert.Equal(t, 2, storedKeys(l))
	})
}
