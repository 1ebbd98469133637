package dashboard

import (
	"testing"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

func TestBadgeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status project.Status
		want   Badge
	}{
		{project.StatusCompleted, Badge{Background: "#10b981", Text: "#ecfdf5"}},
		{project.StatusInProgress, Badge{Background: "#3b82f6", Text: "#eff6ff"}},
		{project.StatusPending, Badge{Background: "#6b7280", Text: "#f3f4f6"}},
		{"archived", Badge{Background: "#6b7280", Text: "#f3f4f6"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := BadgeFor(tt.status); got != tt.want {
				t.Errorf("BadgeFor(%q) = %+v, want %+v", tt.status, got, tt.want)
			}
		})
	}
}

func TestBarColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent int
		want    string
	}{
		{100, "#10b981"},
		{51, "#3b82f6"},
		{50, "#6b7280"},
		{0, "#6b7280"},
	}

	for _, tt := range tests {
		if got := BarColor(project.Tier(tt.percent)); got != tt.want {
			t.Errorf("BarColor(Tier(%d)) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
