// Package dashboard builds the dashboard view model from a project snapshot.
// Everything here is a pure function of its input; rendering adapters
// (HTML, JSON, terminal) consume the result without further decisions.
package dashboard

import "github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"

// Card is the per-project view: the project plus its task progress.
type Card struct {
	Project        project.Project
	CompletedTasks int
	TotalTasks     int
	Percent        int
	Tier           project.ProgressTier
}

// Section is a titled group of cards sharing one project status.
type Section struct {
	Status project.Status
	Cards  []Card
}

// Dashboard is the complete view model for one render pass.
type Dashboard struct {
	Totals          project.Totals
	PercentComplete int
	Sections        []Section
	Unrecognized    []project.Project
}

// NewCard computes the progress figures for a single project.
func NewCard(p project.Project) Card {
	done := project.CompletedCount(p.Tasks)
	pct := project.Percent(done, len(p.Tasks))
	return Card{
		Project:        p,
		CompletedTasks: done,
		TotalTasks:     len(p.Tasks),
		Percent:        pct,
		Tier:           project.Tier(pct),
	}
}

// NewCards maps NewCard over projects, preserving order.
func NewCards(projects []project.Project) []Card {
	cards := make([]Card, len(projects))
	for i := range projects {
		cards[i] = NewCard(projects[i])
	}
	return cards
}

// Build aggregates projects into a Dashboard. Sections follow the order of
// project.Statuses and empty sections are omitted.
func Build(projects []project.Project) Dashboard {
	totals := project.CountTotals(projects)
	part := project.PartitionByStatus(projects)

	var sections []Section
	for _, s := range project.Statuses() {
		group := part.Group(s)
		if len(group) == 0 {
			continue
		}
		sections = append(sections, Section{Status: s, Cards: NewCards(group)})
	}

	return Dashboard{
		Totals:          totals,
		PercentComplete: totals.PercentComplete(),
		Sections:        sections,
		Unrecognized:    project.Unrecognized(projects),
	}
}

// Section returns the section for status s, if present.
func (d Dashboard) Section(s project.Status) (Section, bool) {
	for _, sec := range d.Sections {
		if sec.Status == s {
			return sec, true
		}
	}
	return Section{}, false
}
