// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// Compile-time check that DashboardService implements ports.DashboardService.
var _ ports.DashboardService = (*DashboardService)(nil)

// DashboardService implements ports.DashboardService over a project snapshot
// loaded once at startup. The snapshot is never mutated, so the service is
// safe for concurrent use without locking. It handles logging and metrics
// but contains no business logic; aggregation lives in the domain packages.
type DashboardService struct {
	projects []project.Project
	view     dashboard.Dashboard
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewDashboardService creates a DashboardService over projects. The slice is
// copied. Projects with an unrecognized status are logged at WARN and
// counted; projects whose authored status disagrees with their tasks are
// logged at INFO. Neither changes aggregation. A nil logger falls back to a
// discard logger and nil metrics disables recording.
func NewDashboardService(projects []project.Project, metrics *telemetry.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &DashboardService{
		projects: slices.Clone(projects),
		metrics:  metrics,
		logger:   logger,
	}
	s.view = dashboard.Build(s.projects)
	s.reportDataQuality(context.Background())

	return s
}

// LoadDashboardService loads the snapshot through src and builds the service.
// A load failure is returned unchanged so callers can fail fast.
func LoadDashboardService(
	ctx context.Context, src ports.ProjectSource, metrics *telemetry.Metrics, logger *slog.Logger,
) (*DashboardService, error) {
	projects, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewDashboardService(projects, metrics, logger), nil
}

// Dashboard returns the view model built from the snapshot.
func (s *DashboardService) Dashboard(ctx context.Context) (dashboard.Dashboard, error) {
	s.logger.DebugContext(ctx, "serving dashboard", slog.Int("projects", len(s.projects)))

	if s.metrics != nil {
		s.metrics.DashboardBuildTotal.Add(ctx, 1)
	}
	return s.view, nil
}

// ListProjects returns cards for every project, or for one recognized status.
func (s *DashboardService) ListProjects(ctx context.Context, status project.Status) ([]dashboard.Card, error) {
	s.logger.InfoContext(ctx, "listing projects", slog.String("status", status.String()))

	if status == "" {
		return dashboard.NewCards(s.projects), nil
	}
	if !status.IsValid() {
		err := domain.NewValidationError("status",
			fmt.Sprintf("must be one of completed, in-progress, pending; got %q", status))
		s.logger.WarnContext(ctx, "invalid status filter",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return dashboard.NewCards(project.PartitionByStatus(s.projects).Group(status)), nil
}

// GetProject returns the card for the project with the given ID.
func (s *DashboardService) GetProject(ctx context.Context, id int64) (dashboard.Card, error) {
	s.logger.InfoContext(ctx, "fetching project", slog.Int64("id", id))

	p, ok := project.FindByID(s.projects, id)
	if !ok {
		return dashboard.Card{}, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return dashboard.NewCard(p), nil
}

// Name implements ports.HealthChecker for the loaded snapshot.
func (s *DashboardService) Name() string {
	return "snapshot"
}

// HealthCheck reports the snapshot as healthy once constructed. An empty
// snapshot is a valid document and still healthy.
func (s *DashboardService) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (s *DashboardService) reportDataQuality(ctx context.Context) {
	for _, p := range s.view.Unrecognized {
		s.logger.WarnContext(ctx, "project has unrecognized status; excluded from status groups",
			slog.Int64("project_id", p.ID),
			slog.String("status", p.Status.String()),
		)
		if s.metrics != nil {
			s.metrics.UnrecognizedProjects.Add(ctx, 1,
				metric.WithAttributes(telemetry.AttrProjectStatus.String(p.Status.String())))
		}
	}

	for i := range s.projects {
		p := &s.projects[i]
		if p.StatusMismatch() {
			s.logger.InfoContext(ctx, "project status disagrees with its tasks",
				slog.Int64("project_id", p.ID),
				slog.String("status", p.Status.String()),
				slog.String("derived_status", p.DerivedStatus().String()),
			)
		}
	}
}
