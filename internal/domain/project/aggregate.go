package project

// Partition groups projects by their authored status.
type Partition struct {
	Completed  []Project
	InProgress []Project
	Pending    []Project
}

// Group returns the partition slice for a recognized status, or nil.
func (p Partition) Group(s Status) []Project {
	switch s {
	case StatusCompleted:
		return p.Completed
	case StatusInProgress:
		return p.InProgress
	case StatusPending:
		return p.Pending
	default:
		return nil
	}
}

// Totals holds the dashboard-wide counts.
type Totals struct {
	TotalProjects  int
	TotalTasks     int
	CompletedTasks int
	Completed      int
	InProgress     int
	Pending        int
}

// PercentComplete returns the overall task completion percentage.
func (t Totals) PercentComplete() int {
	return Percent(t.CompletedTasks, t.TotalTasks)
}

// PartitionByStatus splits projects into completed, in-progress and pending
// groups, preserving input order within each group. Projects with an
// unrecognized status appear in no group; see Unrecognized.
func PartitionByStatus(projects []Project) Partition {
	part := Partition{
		Completed:  []Project{},
		InProgress: []Project{},
		Pending:    []Project{},
	}
	for i := range projects {
		switch projects[i].Status {
		case StatusCompleted:
			part.Completed = append(part.Completed, projects[i])
		case StatusInProgress:
			part.InProgress = append(part.InProgress, projects[i])
		case StatusPending:
			part.Pending = append(part.Pending, projects[i])
		}
	}
	return part
}

// Unrecognized returns, in input order, the projects PartitionByStatus drops.
func Unrecognized(projects []Project) []Project {
	var out []Project
	for i := range projects {
		if !projects[i].Status.IsValid() {
			out = append(out, projects[i])
		}
	}
	return out
}

// CountTotals sums project and task counts. CompletedTasks counts tasks by
// their own status, independent of the owning project's status.
// TotalProjects includes projects whose status is unrecognized.
func CountTotals(projects []Project) Totals {
	t := Totals{TotalProjects: len(projects)}
	for i := range projects {
		t.TotalTasks += len(projects[i].Tasks)
		t.CompletedTasks += CompletedCount(projects[i].Tasks)

		switch projects[i].Status {
		case StatusCompleted:
			t.Completed++
		case StatusInProgress:
			t.InProgress++
		case StatusPending:
			t.Pending++
		}
	}
	return t
}

// FindByID returns the project with the given id.
func FindByID(projects []Project, id int64) (Project, bool) {
	for i := range projects {
		if projects[i].ID == id {
			return projects[i], true
		}
	}
	return Project{}, false
}
