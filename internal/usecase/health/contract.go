package health

import "context"

// DBPinger checks storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// VisionChecker checks the vision provider.
type VisionChecker interface {
	HealthCheck(ctx context.Context) error
}
