package ports

import (
	"context"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

// DashboardService defines the service port for the read-only dashboard.
// Implemented by the application layer; called by inbound adapters (HTML page,
// JSON API, terminal renderer). All methods read the snapshot loaded at startup.
type DashboardService interface {
	// Dashboard returns the complete view model: totals, overall percentage
	// and status sections in display order.
	Dashboard(ctx context.Context) (dashboard.Dashboard, error)

	// ListProjects returns project cards in snapshot order. An empty status
	// returns every project, including those with an unrecognized status.
	// Returns domain.ErrValidation if status is not a recognized value.
	ListProjects(ctx context.Context, status project.Status) ([]dashboard.Card, error)

	// GetProject returns the card for a single project.
	// Returns domain.ErrNotFound if no project has the given ID.
	GetProject(ctx context.Context, id int64) (dashboard.Card, error)
}
