package health

import "context"

// Status is the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means search works but ingestion does not.
	Degraded Status = "degraded"
	// Unhealthy means storage is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is one component outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
	// CheckDisabled marks an optional component that is not configured.
	CheckDisabled CheckResult = "disabled"
)

// Component names in Report.Checks.
const (
	ComponentStorage = "storage"
	ComponentVision  = "vision"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	vision VisionChecker
}

// New creates a Service. vision can be nil when ingestion is disabled.
func New(db DBPinger, vision VisionChecker) *Service {
	return &Service{db: db, vision: vision}
}

// Check runs every component check.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: map[string]CheckResult{}}

	if err := s.db.Ping(ctx); err != nil {
		r.Checks[ComponentStorage] = CheckError
		r.Status = Unhealthy
	} else {
		r.Checks[ComponentStorage] = CheckOK
	}

	switch {
	case s.vision == nil:
		r.Checks[ComponentVision] = CheckDisabled
	case s.vision.HealthCheck(ctx) != nil:
		r.Checks[ComponentVision] = CheckError
		if r.Status == Healthy {
			r.Status = Degraded
		}
	default:
		r.Checks[ComponentVision] = CheckOK
	}

	return r
}
