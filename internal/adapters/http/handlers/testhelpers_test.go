package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleProjects() []project.Project {
	return []project.Project{
		{
			ID: 1, Name: "Dashboard", Description: "Overview page", Status: project.StatusInProgress,
			Tasks: []project.Task{
				{ID: 1, Title: "Layout", Status: project.StatusCompleted},
				{ID: 2, Title: "Stats", Status: project.StatusInProgress},
				{ID: 3, Title: "Footer", Status: project.StatusPending},
			},
		},
		{
			ID: 2, Name: "Digest", Description: "Morning summary", Status: project.StatusCompleted,
			CompletedAt: &testTime,
			Tasks: []project.Task{
				{ID: 1, Title: "Collect", Status: project.StatusCompleted},
			},
		},
	}
}

func sampleDashboard() dashboard.Dashboard {
	return dashboard.Build(sampleProjects())
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
