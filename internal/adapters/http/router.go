// Package http is the inbound HTTP adapter: routes, the server lifecycle and,
// in subpackages, handlers, middleware and wire types.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
)

// NewRouter mounts the page, the read-only API and the probes behind
// middlewares, outermost first. Unknown paths get a 404 problem body.
func NewRouter(
	page *handlers.PageHandler,
	api *handlers.ProjectHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, fmt.Errorf("no route for %s: %w", req.URL.Path, domain.ErrNotFound))
	})

	r.Get("/", page.Dashboard)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.Liveness)
		r.Get("/ready", health.Readiness)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", api.Dashboard)
		r.Get("/projects", api.ListProjects)
		r.Get("/projects/{id}", api.GetProject)
	})

	return r
}
