// Package rediscache stores computed match results in Redis.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go-match-backend/internal/domain"
	"go-match-backend/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "match:v1:"

type matchCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

// NewMatchCache returns a Redis-backed cache. A nil client yields a cache
// that never hits, so callers need no special casing when Redis is absent.
func NewMatchCache(rdb *redis.Client, ttl time.Duration, log *slog.Logger) domain.MatchResultCache {
	if rdb == nil {
		return noopCache{}
	}
	return &matchCache{rdb: rdb, ttl: ttl, log: log}
}

// Key identifies a result by both subjects and the creation time of each
// embedding, so a newer upload never reads a stale score.
func Key(candidateID string, jobID int64, resumeEmbeddingAt, jobEmbeddingAt time.Time) string {
	parts := []string{
		candidateID,
		strconv.FormatInt(jobID, 10),
		stamp(resumeEmbeddingAt),
		stamp(jobEmbeddingAt),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func (c *matchCache) Get(ctx context.Context, key string) (*domain.MatchResult, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("match cache: get failed", "key", key, "error", err)
		}
		metrics.CacheResults.WithLabelValues("miss").Inc()
		return nil, false
	}

	var r domain.MatchResult
	if err := json.Unmarshal(data, &r); err != nil {
		c.log.Warn("match cache: corrupt entry", "key", key, "error", err)
		metrics.CacheResults.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheResults.WithLabelValues("hit").Inc()
	return &r, true
}

func (c *matchCache) Set(ctx context.Context, key string, result *domain.MatchResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("match cache: marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("match cache: set failed", "key", key, "error", err)
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.MatchResult, bool) { return nil, false }
func (noopCache) Set(context.Context, string, *domain.MatchResult)        {}
