package dashboard

import "github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"

// Badge is the color pair used for a status badge.
type Badge struct {
	Background string
	Text       string
}

// Fallback colors for anything outside the recognized statuses.
const (
	neutralBackground = "#6b7280"
	neutralText       = "#f3f4f6"
)

var badges = map[project.Status]Badge{
	project.StatusCompleted:  {Background: "#10b981", Text: "#ecfdf5"},
	project.StatusInProgress: {Background: "#3b82f6", Text: "#eff6ff"},
	project.StatusPending:    {Background: neutralBackground, Text: neutralText},
}

// BadgeFor returns the badge colors for s. Unrecognized statuses render
// with the pending palette.
func BadgeFor(s project.Status) Badge {
	if b, ok := badges[s]; ok {
		return b
	}
	return Badge{Background: neutralBackground, Text: neutralText}
}

// AccentFor returns the section heading color for s.
func AccentFor(s project.Status) string {
	return BadgeFor(s).Background
}

// BarColor returns the progress bar fill color for a tier.
func BarColor(t project.ProgressTier) string {
	switch t {
	case project.TierComplete:
		return "#10b981"
	case project.TierMid:
		return "#3b82f6"
	default:
		return neutralBackground
	}
}
