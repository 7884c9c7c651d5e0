package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	LogLevel          string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Matching Configuration
	MatchCacheTTL  time.Duration
	ScoringWorkers int // Goroutines used for batch scoring
	DefaultTopN    int
	MaxTopN        int
	// Requests per minute per user on the batch scoring routes
	ScoringRateLimit int
	// Embedding store circuit breaker
	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration
	BreakerTimeout      time.Duration
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	MetricsEnabled      bool
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trailing slash would produce //auth in the JWKS URL
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Matching Configuration
		MatchCacheTTL:  time.Duration(getEnvInt("MATCH_CACHE_TTL_SECONDS", 900)) * time.Second,
		ScoringWorkers: getEnvInt("SCORING_WORKERS", 8),
		DefaultTopN:    getEnvInt("DEFAULT_TOP_N", 10),
		MaxTopN:        getEnvInt("MAX_TOP_N", 500),
		// Requests per minute per user on the batch scoring routes
		ScoringRateLimit: getEnvInt("SCORING_RATE_LIMIT_PER_MINUTE", 30),
		// Circuit breaker (trips at 60% failures over at least 10 calls by default)
		BreakerMaxRequests:  uint32(getEnvInt("BREAKER_MAX_REQUESTS", 3)),
		BreakerInterval:     time.Duration(getEnvInt("BREAKER_INTERVAL_SECONDS", 60)) * time.Second,
		BreakerTimeout:      time.Duration(getEnvInt("BREAKER_TIMEOUT_SECONDS", 30)) * time.Second,
		BreakerMinRequests:  uint32(getEnvInt("BREAKER_MIN_REQUESTS", 10)),
		BreakerFailureRatio: getEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Match results will not be cached.")
	}
	if cfg.ScoringWorkers <= 0 {
		cfg.ScoringWorkers = 1
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 10
	}
	if cfg.ScoringRateLimit <= 0 {
		cfg.ScoringRateLimit = 30
	}
	if cfg.MaxTopN < cfg.DefaultTopN {
		cfg.MaxTopN = cfg.DefaultTopN
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
