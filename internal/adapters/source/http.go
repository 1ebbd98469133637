package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// Compile-time interface check.
var _ ports.ProjectSource = (*HTTPSource)(nil)

// HTTPSource fetches the projects document over HTTP. The underlying
// [httpclient.Client] provides circuit breaking, rate limiting, retry with
// exponential backoff and OpenTelemetry tracing; its breaker state doubles
// as a [ports.HealthChecker] for the readiness probe.
type HTTPSource struct {
	client *httpclient.Client
	path   string
	logger *slog.Logger
}

// NewHTTPSource creates an HTTPSource that GETs path (relative to the client's
// base URL, or absolute).
func NewHTTPSource(client *httpclient.Client, path string, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{client: client, path: path, logger: logger}
}

// Load fetches and decodes the document. Non-2xx responses become a
// [*StatusError] wrapping the matching domain sentinel.
func (s *HTTPSource) Load(ctx context.Context) ([]project.Project, error) {
	resp, err := s.client.Get(ctx, s.path)
	if resp != nil {
		defer s.closeBody(ctx, resp)
	}
	// httpclient hands back the last response along with the error once
	// retries run out on a retryable status.
	if resp != nil && (err != nil || resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices) {
		statusErr := responseError(resp)
		s.logger.ErrorContext(ctx, "projects document request failed",
			slog.String("path", s.path),
			slog.Int("status", statusErr.Status),
			slog.String("detail", statusErr.Detail),
		)
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, statusErr)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "projects document request failed",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, err)
	}

	data, err := readDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading projects document %s: %w", s.path, err)
	}

	projects, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, err)
	}

	s.logger.InfoContext(ctx, "projects document loaded",
		slog.String("source", "http"),
		slog.String("path", s.path),
		slog.Int("projects", len(projects)),
	)
	return projects, nil
}

// closeBody closes an HTTP response body and logs on failure.
func (s *HTTPSource) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		s.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
