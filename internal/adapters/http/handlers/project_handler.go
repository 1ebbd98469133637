// Package handlers provides HTTP request handlers for the dashboard page, the
// read-only JSON API and the health endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// ProjectHandler handles the JSON API for the dashboard snapshot.
type ProjectHandler struct {
	svc ports.DashboardService
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(svc ports.DashboardService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Dashboard handles GET /api/v1/dashboard.
func (h *ProjectHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDashboardResponse(&d))
}

// ListProjects handles GET /api/v1/projects with an optional ?status= filter.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	status := project.Status(r.URL.Query().Get("status"))

	cards, err := h.svc.ListProjects(r.Context(), status)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCardListResponse(cards))
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	card, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCardResponse(&card))
}
