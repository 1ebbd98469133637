// Package project holds the Project and Task entities together with the pure
// status aggregation and progress computations applied to them.
package project

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
)

// Task is an individual unit of work belonging to a project.
type Task struct {
	ID     int64
	Title  string
	Status Status
}

// IsCompleted reports whether the task status is completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Project is a trackable unit of work with its ordered task list.
//
// Status is authored independently of the task statuses; nothing keeps the
// two consistent. CompletedAt is nil when the source omits it or sets null.
type Project struct {
	ID          int64
	Name        string
	Description string
	Status      Status
	CompletedAt *time.Time
	Tasks       []Task
}

// Validate checks structural rules for the Project entity: a positive ID and
// unique task IDs. Task ID zero means "unassigned" and is never a duplicate.
// Names, titles and unknown statuses are tolerated; they are data-quality
// concerns handled by aggregation and rendering, not a load failure.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if p.ID <= 0 {
		fields["id"] = fmt.Sprintf("must be positive, got %d", p.ID)
	}

	seen := make(map[int64]bool, len(p.Tasks))
	for i, t := range p.Tasks {
		key := "tasks/" + strconv.Itoa(i)
		switch {
		case t.ID < 0:
			fields[key+"/id"] = fmt.Sprintf("must not be negative, got %d", t.ID)
		case t.ID > 0 && seen[t.ID]:
			fields[key+"/id"] = fmt.Sprintf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// DerivedStatus computes the status implied by the task list: completed when
// every task is completed, pending when no task has started, in-progress
// otherwise. A project without tasks derives pending.
func (p *Project) DerivedStatus() Status {
	if len(p.Tasks) == 0 {
		return StatusPending
	}
	done := CompletedCount(p.Tasks)
	if done == len(p.Tasks) {
		return StatusCompleted
	}
	for _, t := range p.Tasks {
		if t.Status != StatusPending {
			return StatusInProgress
		}
	}
	return StatusPending
}

// StatusMismatch reports whether the authored status disagrees with the
// status derived from the tasks. Only recognized statuses are compared.
func (p *Project) StatusMismatch() bool {
	return p.Status.IsValid() && p.Status != p.DerivedStatus()
}
