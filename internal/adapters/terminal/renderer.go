// Package terminal renders the dashboard view model as styled text for a
// terminal. It makes no decisions of its own: ordering, grouping and
// percentages all come from dashboard.Build.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

const (
	// DefaultWidth is used when the caller passes a non-positive width.
	DefaultWidth = 80
	minWidth     = 40
	barWidth     = 20

	updatedLayout = "January 2, 2006"
)

// Renderer draws a dashboard.Dashboard into a fixed-width block of text.
type Renderer struct {
	title    string
	subtitle string
	width    int
	now      func() time.Time
	styles   styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the total output width in columns.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = max(width, minWidth)
		}
	}
}

// WithClock overrides the clock used for the "Last updated" footer.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer creates a Renderer with the given header text.
func NewRenderer(title, subtitle string, opts ...Option) *Renderer {
	r := &Renderer{
		title:    title,
		subtitle: subtitle,
		width:    DefaultWidth,
		now:      time.Now,
		styles:   newStyles(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the full dashboard: header, stat line, one block per
// non-empty section, and the footer.
func (r *Renderer) Render(d dashboard.Dashboard) string {
	blocks := []string{
		r.renderHeader(),
		r.renderStats(d.Totals, d.PercentComplete),
	}
	for _, sec := range d.Sections {
		blocks = append(blocks, r.renderSection(sec))
	}
	blocks = append(blocks, r.styles.Footer.Render("Last updated: "+r.now().Format(updatedLayout)))

	return strings.Join(blocks, "\n\n") + "\n"
}

// Write renders d to w.
func (r *Renderer) Write(w io.Writer, d dashboard.Dashboard) error {
	if _, err := io.WriteString(w, r.Render(d)); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}
	return nil
}

func (r *Renderer) renderHeader() string {
	return r.styles.Title.Render(r.title) + "\n" + r.styles.Subtitle.Render(r.subtitle)
}

func (r *Renderer) renderStats(t project.Totals, percent int) string {
	stat := func(label, value string, style lipgloss.Style) string {
		return r.styles.StatLabel.Render(label+" ") + style.Render(value)
	}
	return strings.Join([]string{
		stat("Total Projects", fmt.Sprint(t.TotalProjects), r.styles.StatValue),
		stat("Completed", fmt.Sprint(t.Completed), r.styles.statAccent(project.StatusCompleted)),
		stat("In Progress", fmt.Sprint(t.InProgress), r.styles.statAccent(project.StatusInProgress)),
		stat(fmt.Sprintf("Tasks: %d/%d", t.CompletedTasks, t.TotalTasks), fmt.Sprintf("%d%%", percent), r.styles.StatValue),
	}, "   ")
}

func (r *Renderer) renderSection(sec dashboard.Section) string {
	lines := make([]string, 0, len(sec.Cards)+1)
	lines = append(lines, r.styles.sectionHeader(sec.Status).Render(sec.Status.Label()))
	for _, c := range sec.Cards {
		lines = append(lines, r.renderCard(c))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderCard(c dashboard.Card) string {
	// Border takes two columns, horizontal padding two more.
	inner := r.width - 4

	badge := r.styles.badge(c.Project.Status).Render(c.Project.Status.Label())
	nameWidth := max(inner-lipgloss.Width(badge)-1, 1)
	name := ansi.Truncate(cardName(c.Project), nameWidth, "…")
	gap := strings.Repeat(" ", max(inner-lipgloss.Width(name)-lipgloss.Width(badge), 1))

	lines := []string{r.styles.CardName.Render(name) + gap + badge}
	if c.Project.Description != "" {
		lines = append(lines, r.styles.CardDesc.Render(ansi.Truncate(c.Project.Description, inner, "…")))
	}
	lines = append(lines, r.renderBar(c))
	for _, t := range c.Project.Tasks {
		lines = append(lines, r.renderTask(t, inner))
	}

	return r.styles.Card.Width(r.width - 2).Render(strings.Join(lines, "\n"))
}

// renderBar draws the card progress bar from the card's rounded percent, so
// the bar and the label never disagree.
func (r *Renderer) renderBar(c dashboard.Card) string {
	filled := c.Percent * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	label := fmt.Sprintf(" %d/%d (%d%%)", c.CompletedTasks, c.TotalTasks, c.Percent)
	return r.styles.bar(c.Tier).Render(bar) + r.styles.CardDesc.Render(label)
}

func (r *Renderer) renderTask(t project.Task, width int) string {
	style := r.styles.TaskOpen
	if t.IsCompleted() {
		style = r.styles.TaskDone
	}
	title := ansi.Truncate(t.Title, max(width-2, 1), "…")
	return t.Status.Marker() + " " + style.Render(title)
}

// cardName prefixes the project id; names are optional in the document.
func cardName(p project.Project) string {
	if p.Name == "" {
		return fmt.Sprintf("#%d", p.ID)
	}
	return fmt.Sprintf("#%d %s", p.ID, p.Name)
}
