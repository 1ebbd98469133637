package source

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
)

const (
	maxErrorBodySize = 64 << 10
	maxSnippetLen    = 200
)

// StatusError is a non-2xx answer from the document host. It unwraps to
// the domain sentinel for its status, if any.
type StatusError struct {
	Status int
	Detail string
	kind   error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("document host answered %d: %s", e.Status, e.Detail)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// kindForStatus maps a response status to the domain sentinel reported to
// callers. nil leaves the status unclassified.
func kindForStatus(status int) error {
	switch {
	case status == http.StatusNotFound, status == http.StatusGone:
		return domain.ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return domain.ErrTimeout
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// responseError reads what it can of resp's body and turns it into a
// *StatusError. Problem documents contribute their detail field; other
// bodies contribute a short text snippet.
func responseError(resp *http.Response) *StatusError {
	detail := describeBody(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &StatusError{Status: resp.StatusCode, Detail: detail, kind: kindForStatus(resp.StatusCode)}
}

func describeBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return ""
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/problem+json":
		var problem struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &problem) != nil {
			return ""
		}
		if problem.Detail != "" {
			return problem.Detail
		}
		return problem.Title
	case "text/plain", "":
		return snippet(body)
	default:
		return ""
	}
}

// snippet returns the first line of body, cut to maxSnippetLen runes.
func snippet(body []byte) string {
	if !utf8.Valid(body) {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(body)), "\n")
	if utf8.RuneCountInString(line) <= maxSnippetLen {
		return line
	}
	return string([]rune(line)[:maxSnippetLen]) + "…"
}
