package ports

import (
	"context"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

// ProjectSource defines the client port for reading the projects document.
// Implemented by the source adapters (file, HTTP); called once at startup.
type ProjectSource interface {
	// Load reads, validates and translates the whole document.
	// Returns a *domain.ValidationError (wrapping domain.ErrValidation) when
	// the document is malformed; nothing is returned partially.
	Load(ctx context.Context) ([]project.Project, error)
}
