package usecase

import (
	"context"
	"sort"
	"time"

	"go-match-backend/pkg/logger"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewHealthUsecase builds a health check over the named dependency probes.
// A nil probe marks a dependency that is not configured.
func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check runs every probe and reports "ok", "disabled" or "error" per
// dependency. Probe errors are logged, never returned. healthy is false when
// any configured probe failed.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		check := u.checks[name]
		if check == nil {
			status[name] = "disabled"
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, u.timeout)
		err := check(cctx)
		cancel()
		if err != nil {
			logger.Log.Error("health probe failed", "dependency", name, "error", err)
			status[name] = "error"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
