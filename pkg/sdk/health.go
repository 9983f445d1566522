package snapdex

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/snapdex/internal/usecase/health"
)

// Health states reported in HealthStatus.Status.
const (
	HealthOK       = string(healthuc.Healthy)
	HealthDegraded = string(healthuc.Degraded)
	HealthError    = string(healthuc.Unhealthy)
)

// HealthStatus is the aggregated state of storage and the vision provider.
// Degraded means search works but new screenshots cannot be analyzed.
type HealthStatus struct {
	Status string
	Checks map[string]string // "storage", "vision" -> "ok", "error" or "disabled"
}

// Searchable reports whether stored screenshots can still be searched.
func (h HealthStatus) Searchable() bool { return h.Status != HealthError }

// Health checks storage and, when configured, the vision provider.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	c.obs.observe("health", start, nil, "status", string(report.Status))

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
