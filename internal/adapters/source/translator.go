package source

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
)

// dateOnly is accepted for completedAt alongside RFC 3339.
const dateOnly = "2006-01-02"

// toDomainProjects translates document records into domain projects,
// preserving order. All problems across all records are reported together
// in one *domain.ValidationError keyed by JSON-pointer location.
func toDomainProjects(dtos []projectDTO) ([]project.Project, error) {
	projects := make([]project.Project, 0, len(dtos))
	fields := make(map[string]string)
	seen := make(map[int64]int, len(dtos))

	for i := range dtos {
		prefix := "projects/" + strconv.Itoa(i) + "/"

		p, err := toDomainProject(&dtos[i])
		if err != nil {
			mergeFields(fields, prefix, err)
		}

		if first, dup := seen[p.ID]; dup {
			fields[prefix+"id"] = fmt.Sprintf("duplicate project id %d (first at projects/%d)", p.ID, first)
		} else {
			seen[p.ID] = i
		}

		projects = append(projects, p)
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return projects, nil
}

// toDomainProject translates a single record. The returned project is usable
// for duplicate detection even when err is non-nil.
func toDomainProject(dto *projectDTO) (project.Project, error) {
	p := project.Project{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Status:      project.Status(dto.Status),
		Tasks:       toDomainTasks(dto.Tasks),
	}

	fields := make(map[string]string)
	completedAt, err := parseCompletedAt(dto.CompletedAt)
	if err != nil {
		fields["completedAt"] = err.Error()
	}
	p.CompletedAt = completedAt

	if err := p.Validate(); err != nil {
		mergeFields(fields, "", err)
	}

	if len(fields) > 0 {
		return p, &domain.ValidationError{Fields: fields}
	}
	return p, nil
}

func toDomainTasks(dtos []taskDTO) []project.Task {
	tasks := make([]project.Task, len(dtos))
	for i, t := range dtos {
		tasks[i] = project.Task{
			ID:     t.ID,
			Title:  t.Title,
			Status: project.Status(t.Status),
		}
	}
	return tasks
}

// parseCompletedAt accepts a missing, null or empty value (nil result), an
// RFC 3339 timestamp, or a bare date interpreted as midnight UTC.
func parseCompletedAt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil //nolint:nilnil // absent timestamp is not an error
	}
	if ts, err := time.Parse(time.RFC3339, *s); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse(dateOnly, *s)
	if err != nil {
		return nil, fmt.Errorf("must be an RFC 3339 timestamp or YYYY-MM-DD date, got %q", *s)
	}
	return &ts, nil
}

// mergeFields copies the per-field messages of a *domain.ValidationError into
// dst under prefix. Any other error is recorded against the prefix itself.
func mergeFields(dst map[string]string, prefix string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		if prefix == "" {
			maps.Copy(dst, verr.Fields)
			return
		}
		for k, v := range verr.Fields {
			dst[prefix+k] = v
		}
		return
	}
	key := prefix
	if key == "" {
		key = rootField
	}
	dst[key] = err.Error()
}
