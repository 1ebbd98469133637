package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/jeeves-dashboard/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func tasks(statuses ...project.Status) []project.Task {
	out := make([]project.Task, len(statuses))
	for i, s := range statuses {
		out[i] = project.Task{ID: int64(i + 1), Title: "task", Status: s}
	}
	return out
}

func snapshot() []project.Project {
	return []project.Project{
		{ID: 1, Name: "Dashboard", Status: project.StatusInProgress,
			Tasks: tasks(project.StatusCompleted, project.StatusPending)},
		{ID: 2, Name: "Digest", Status: project.StatusCompleted,
			Tasks: tasks(project.StatusCompleted, project.StatusCompleted)},
		{ID: 3, Name: "Calendar", Status: project.StatusPending},
		{ID: 4, Name: "Legacy", Status: "archived",
			Tasks: tasks(project.StatusCompleted)},
		{ID: 5, Name: "Backups", Status: project.StatusInProgress,
			Tasks: tasks(project.StatusPending, project.StatusPending, project.StatusCompleted)},
	}
}

// newTestMetrics returns metrics backed by a manual reader for assertions.
func newTestMetrics(t *testing.T) (*telemetry.Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(mp, "test-service")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

// counterValue sums all data points of the named int64 counter.
func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s data = %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

// --- NewDashboardService ---

func TestNewDashboardService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(snapshot(), nil, nil)
	if svc.logger == nil {
		t.Fatal("NewDashboardService(nil logger) should create a no-op logger, got nil")
	}
}

func TestNewDashboardService_CopiesInput(t *testing.T) {
	t.Parallel()

	in := snapshot()
	svc := NewDashboardService(in, nil, discardLogger())
	in[0].Name = "mutated"

	card, err := svc.GetProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if card.Project.Name != "Dashboard" {
		t.Errorf("Project.Name = %q, want %q", card.Project.Name, "Dashboard")
	}
}

func TestNewDashboardService_LogsUnrecognizedStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics, reader := newTestMetrics(t)

	projects := append(snapshot(), project.Project{
		ID: 6, Name: "Stale", Status: project.StatusCompleted, Tasks: tasks(project.StatusPending),
	})
	NewDashboardService(projects, metrics, logger)

	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, `"status":"archived"`) {
		t.Errorf("log output missing WARN for archived project:\n%s", out)
	}
	if !strings.Contains(out, `"derived_status"`) {
		t.Errorf("log output missing status mismatch entry:\n%s", out)
	}
	for line := range strings.Lines(out) {
		if strings.Contains(line, `"derived_status"`) && !strings.Contains(line, `"level":"INFO"`) {
			t.Errorf("status mismatch logged at wrong level: %s", line)
		}
	}
	if got := counterValue(t, reader, "dashboard.projects.unrecognized"); got != 1 {
		t.Errorf("dashboard.projects.unrecognized = %d, want 1", got)
	}
}

// --- LoadDashboardService ---

func TestLoadDashboardService(t *testing.T) {
	t.Parallel()

	src := mocks.NewMockProjectSource(t)
	src.EXPECT().Load(mock.Anything).Return(snapshot(), nil)

	svc, err := LoadDashboardService(context.Background(), src, nil, discardLogger())
	if err != nil {
		t.Fatalf("LoadDashboardService() error = %v", err)
	}
	d, _ := svc.Dashboard(context.Background())
	if d.Totals.TotalProjects != 5 {
		t.Errorf("TotalProjects = %d, want 5", d.Totals.TotalProjects)
	}
}

func TestLoadDashboardService_Error(t *testing.T) {
	t.Parallel()

	loadErr := &domain.ValidationError{Fields: map[string]string{"projects": domain.MsgRequired}}
	src := mocks.NewMockProjectSource(t)
	src.EXPECT().Load(mock.Anything).Return(nil, loadErr)

	svc, err := LoadDashboardService(context.Background(), src, nil, discardLogger())
	if svc != nil {
		t.Error("LoadDashboardService() service != nil on error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("LoadDashboardService() error = %v, want ErrValidation", err)
	}
}

// --- Dashboard ---

func TestDashboard(t *testing.T) {
	t.Parallel()

	metrics, reader := newTestMetrics(t)
	svc := NewDashboardService(snapshot(), metrics, discardLogger())

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	want := project.Totals{
		TotalProjects: 5, TotalTasks: 8, CompletedTasks: 5,
		Completed: 1, InProgress: 2, Pending: 1,
	}
	if d.Totals != want {
		t.Errorf("Totals = %+v, want %+v", d.Totals, want)
	}
	if d.PercentComplete != 63 {
		t.Errorf("PercentComplete = %d, want 63", d.PercentComplete)
	}
	if len(d.Sections) != 3 || d.Sections[0].Status != project.StatusInProgress {
		t.Errorf("Sections = %+v, want in-progress first of 3", d.Sections)
	}
	if len(d.Unrecognized) != 1 || d.Unrecognized[0].ID != 4 {
		t.Errorf("Unrecognized = %+v, want project 4", d.Unrecognized)
	}

	_, _ = svc.Dashboard(context.Background())
	if got := counterValue(t, reader, "dashboard.build.total"); got != 2 {
		t.Errorf("dashboard.build.total = %d, want 2", got)
	}
}

func TestDashboard_LogsServedSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewDashboardService(snapshot(), nil, logger)
	buf.Reset()

	if _, err := svc.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"msg":"serving dashboard"`) || !strings.Contains(out, `"projects":5`) {
		t.Errorf("log output missing serving entry:\n%s", out)
	}
}

func TestDashboard_EmptySnapshot(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(nil, nil, discardLogger())

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Totals != (project.Totals{}) || d.PercentComplete != 0 || len(d.Sections) != 0 {
		t.Errorf("Dashboard() = %+v, want zero totals and no sections", d)
	}
}

// --- ListProjects ---

func TestListProjects(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(snapshot(), nil, discardLogger())

	tests := []struct {
		name    string
		status  project.Status
		wantIDs []int64
		wantErr error
	}{
		{name: "no filter returns all in order", status: "", wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "in-progress", status: project.StatusInProgress, wantIDs: []int64{1, 5}},
		{name: "completed", status: project.StatusCompleted, wantIDs: []int64{2}},
		{name: "pending", status: project.StatusPending, wantIDs: []int64{3}},
		{name: "unrecognized filter", status: "archived", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cards, err := svc.ListProjects(context.Background(), tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ListProjects() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListProjects() error = %v", err)
			}

			gotIDs := make([]int64, len(cards))
			for i, c := range cards {
				gotIDs[i] = c.Project.ID
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v, want %v", gotIDs, tt.wantIDs)
					break
				}
			}
		})
	}
}

// --- GetProject ---

func TestGetProject(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(snapshot(), nil, discardLogger())

	card, err := svc.GetProject(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if card.CompletedTasks != 1 || card.TotalTasks != 3 || card.Percent != 33 {
		t.Errorf("card = %d/%d (%d%%), want 1/3 (33%%)", card.CompletedTasks, card.TotalTasks, card.Percent)
	}
	if card.Tier != project.TierLow {
		t.Errorf("Tier = %v, want %v", card.Tier, project.TierLow)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(snapshot(), nil, discardLogger())

	_, err := svc.GetProject(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetProject() error = %v, want ErrNotFound", err)
	}
}

// --- HealthCheck ---

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(nil, nil, discardLogger())
	if svc.Name() != "snapshot" {
		t.Errorf("Name() = %q, want %q", svc.Name(), "snapshot")
	}
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck(canceled) = %v, want context.Canceled", err)
	}
}
