// Package dto provides HTTP response data transfer objects and RFC 9457
// Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// ProjectResponse represents a project record in HTTP responses, using the
// same field names as the projects document.
type ProjectResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	CompletedAt *string        `json:"completedAt"`
	Tasks       []TaskResponse `json:"tasks"`
}

// CardResponse is a project together with its computed progress.
type CardResponse struct {
	Project        ProjectResponse `json:"project"`
	CompletedTasks int             `json:"completed_tasks"`
	TotalTasks     int             `json:"total_tasks"`
	Percent        int             `json:"percent"`
	Tier           string          `json:"tier"`
}

// CardListResponse represents a list of project cards.
type CardListResponse struct {
	Projects []CardResponse `json:"projects"`
	Count    int            `json:"count"`
}

// SectionResponse is a status group in display order.
type SectionResponse struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Cards  []CardResponse `json:"cards"`
}

// TotalsResponse carries the dashboard-wide counts.
type TotalsResponse struct {
	TotalProjects  int `json:"total_projects"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Completed      int `json:"completed"`
	InProgress     int `json:"in_progress"`
	Pending        int `json:"pending"`
}

// DashboardResponse is the JSON form of the dashboard view model.
type DashboardResponse struct {
	Totals          TotalsResponse    `json:"totals"`
	PercentComplete int               `json:"percent_complete"`
	Sections        []SectionResponse `json:"sections"`
	Unrecognized    []int64           `json:"unrecognized_project_ids"`
}

// ToProjectResponse converts a domain Project to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.String(),
		Tasks:       make([]TaskResponse, len(p.Tasks)),
	}
	if p.CompletedAt != nil {
		ts := p.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &ts
	}
	for i, t := range p.Tasks {
		resp.Tasks[i] = TaskResponse{ID: t.ID, Title: t.Title, Status: t.Status.String()}
	}
	return resp
}

// ToCardResponse converts a dashboard Card to an HTTP response DTO.
func ToCardResponse(c *dashboard.Card) CardResponse {
	return CardResponse{
		Project:        ToProjectResponse(&c.Project),
		CompletedTasks: c.CompletedTasks,
		TotalTasks:     c.TotalTasks,
		Percent:        c.Percent,
		Tier:           string(c.Tier),
	}
}

// ToCardListResponse converts a slice of cards to a list response DTO.
func ToCardListResponse(cards []dashboard.Card) CardListResponse {
	items := make([]CardResponse, len(cards))
	for i := range cards {
		items[i] = ToCardResponse(&cards[i])
	}
	return CardListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// ToDashboardResponse converts the dashboard view model to its JSON form.
// Sections and unrecognized ids are always non-nil so they encode as [].
func ToDashboardResponse(d *dashboard.Dashboard) DashboardResponse {
	sections := make([]SectionResponse, len(d.Sections))
	for i, sec := range d.Sections {
		cards := make([]CardResponse, len(sec.Cards))
		for j := range sec.Cards {
			cards[j] = ToCardResponse(&sec.Cards[j])
		}
		sections[i] = SectionResponse{
			Status: sec.Status.String(),
			Label:  sec.Status.Label(),
			Cards:  cards,
		}
	}

	unrecognized := make([]int64, len(d.Unrecognized))
	for i, p := range d.Unrecognized {
		unrecognized[i] = p.ID
	}

	return DashboardResponse{
		Totals: TotalsResponse{
			TotalProjects:  d.Totals.TotalProjects,
			TotalTasks:     d.Totals.TotalTasks,
			CompletedTasks: d.Totals.CompletedTasks,
			Completed:      d.Totals.Completed,
			InProgress:     d.Totals.InProgress,
			Pending:        d.Totals.Pending,
		},
		PercentComplete: d.PercentComplete,
		Sections:        sections,
		Unrecognized:    unrecognized,
	}
}
