package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

// Palette shared with the HTML page; see dashboard.BadgeFor.
var (
	subtle = lipgloss.Color("#a0a0a0")
	dim    = lipgloss.Color("#606060")
	green  = lipgloss.Color("#10b981")
	blue   = lipgloss.Color("#3b82f6")
)

type styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Card      lipgloss.Style
	CardName  lipgloss.Style
	CardDesc  lipgloss.Style
	TaskDone  lipgloss.Style
	TaskOpen  lipgloss.Style
	Footer    lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(subtle),
		StatLabel: lipgloss.NewStyle().Foreground(subtle),
		StatValue: lipgloss.NewStyle().Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1),
		CardName: lipgloss.NewStyle().Bold(true),
		CardDesc: lipgloss.NewStyle().Foreground(subtle),
		TaskDone: lipgloss.NewStyle().Foreground(dim).Strikethrough(true),
		TaskOpen: lipgloss.NewStyle(),
		Footer:   lipgloss.NewStyle().Foreground(dim),
	}
}

func (s styles) sectionHeader(status project.Status) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(dashboard.AccentFor(status)))
}

func (s styles) badge(status project.Status) lipgloss.Style {
	b := dashboard.BadgeFor(status)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(b.Background)).
		Foreground(lipgloss.Color(b.Text)).
		Bold(true).
		Padding(0, 1)
}

func (s styles) bar(tier project.ProgressTier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(dashboard.BarColor(tier)))
}

func (s styles) statAccent(status project.Status) lipgloss.Style {
	switch status {
	case project.StatusCompleted:
		return s.StatValue.Foreground(green)
	case project.StatusInProgress:
		return s.StatValue.Foreground(blue)
	default:
		return s.StatValue
	}
}
