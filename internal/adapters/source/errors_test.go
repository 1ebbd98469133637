package source

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
)

func response(status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{StatusCode: status, Header: h, Body: io.NopCloser(strings.NewReader(body))}
}

func TestResponseError_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusGone, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrForbidden},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusRequestTimeout, domain.ErrTimeout},
		{http.StatusGatewayTimeout, domain.ErrTimeout},
		{http.StatusTooManyRequests, domain.ErrUnavailable},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusBadGateway, domain.ErrUnavailable},
		{http.StatusTeapot, nil},
	}

	sentinels := []error{domain.ErrNotFound, domain.ErrForbidden, domain.ErrTimeout, domain.ErrUnavailable}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			err := responseError(response(tt.status, "", ""))
			if err.Status != tt.status {
				t.Errorf("Status = %d, want %d", err.Status, tt.status)
			}
			for _, s := range sentinels {
				if got := errors.Is(err, s); got != (s == tt.want) {
					t.Errorf("errors.Is(%v) = %v, want %v", s, got, s == tt.want)
				}
			}
		})
	}
}

func TestResponseError_Detail(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxSnippetLen+10)

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{
			name:        "problem detail",
			status:      http.StatusNotFound,
			contentType: "application/problem+json; charset=utf-8",
			body:        `{"title":"Not Found","status":404,"detail":"projects.json not published"}`,
			want:        "projects.json not published",
		},
		{
			name:        "problem title without detail",
			status:      http.StatusServiceUnavailable,
			contentType: "application/problem+json",
			body:        `{"title":"Maintenance"}`,
			want:        "Maintenance",
		},
		{
			name:        "malformed problem falls back to status text",
			status:      http.StatusNotFound,
			contentType: "application/problem+json",
			body:        `{"detail":`,
			want:        "Not Found",
		},
		{
			name:        "plain text first line",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "  upstream reset\nstack follows",
			want:        "upstream reset",
		},
		{
			name:   "long text is cut",
			status: http.StatusBadGateway,
			body:   long,
			want:   long[:maxSnippetLen] + "…",
		},
		{
			name:        "html body ignored",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "<h1>502</h1>",
			want:        "Bad Gateway",
		},
		{
			name:   "empty body",
			status: http.StatusServiceUnavailable,
			want:   "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := responseError(response(tt.status, tt.contentType, tt.body))
			if err.Detail != tt.want {
				t.Errorf("Detail = %q, want %q", err.Detail, tt.want)
			}
		})
	}
}

func TestResponseError_NilBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusNotFound, Header: http.Header{}}

	err := responseError(resp)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if want := "document host answered 404: Not Found"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
