package project

// Status represents the lifecycle state shared by projects and tasks.
// Values outside the defined constants are preserved as loaded and
// reported by IsValid.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPending    Status = "pending"
)

// Statuses lists the recognized statuses in dashboard display order.
func Statuses() []Status {
	return []Status{StatusInProgress, StatusCompleted, StatusPending}
}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusPending:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Label returns the human-readable badge text for the status.
// Unrecognized statuses are returned verbatim.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "✓ Completed"
	case StatusInProgress:
		return "⚡ In Progress"
	case StatusPending:
		return "⏳ Pending"
	default:
		return string(s)
	}
}

// Marker returns the single-glyph task marker for the status.
func (s Status) Marker() string {
	switch s {
	case StatusCompleted:
		return "✓"
	case StatusInProgress:
		return "◐"
	default:
		return "◯"
	}
}
