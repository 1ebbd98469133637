package ports

import "context"

// HealthChecker reports whether one dependency can serve. The snapshot
// service and the projects source client implement it.
type HealthChecker interface {
	// Name keys the checker's result, e.g. "snapshot" or "projects-source".
	Name() string

	// HealthCheck returns nil when healthy. It must honor ctx.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry aggregates checkers for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker; a nil value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
