package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/dashboard"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/logging"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// updatedLayout formats the "Last updated" footer date.
const updatedLayout = "January 2, 2006"

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"badge":    dashboard.BadgeFor,
			"accent":   dashboard.AccentFor,
			"barColor": dashboard.BarColor,
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// PageHandler renders the HTML dashboard.
type PageHandler struct {
	svc      ports.DashboardService
	title    string
	subtitle string
	now      func() time.Time
}

// PageOption configures a PageHandler.
type PageOption func(*PageHandler)

// WithClock overrides the clock used for the "Last updated" footer.
func WithClock(now func() time.Time) PageOption {
	return func(h *PageHandler) { h.now = now }
}

// NewPageHandler creates a PageHandler with the given header text.
func NewPageHandler(svc ports.DashboardService, title, subtitle string, opts ...PageOption) *PageHandler {
	h := &PageHandler{
		svc:      svc,
		title:    title,
		subtitle: subtitle,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type pageData struct {
	Title     string
	Subtitle  string
	Dashboard dashboard.Dashboard
	UpdatedAt string
}

// Dashboard handles GET /. The page is rendered into a buffer first so a
// template failure still produces a clean problem response.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var buf bytes.Buffer
	data := pageData{
		Title:     h.title,
		Subtitle:  h.subtitle,
		Dashboard: d,
		UpdatedAt: h.now().Format(updatedLayout),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to render dashboard page", slog.Any("error", err))
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "failed to write dashboard page", slog.Any("error", err))
	}
}
