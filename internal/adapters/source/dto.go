package source

// documentDTO matches the projects document root. Projects is a pointer so a
// missing field can be told apart from an empty list.
type documentDTO struct {
	Projects *[]projectDTO `json:"projects"`
}

// projectDTO matches a single project record in the document.
type projectDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CompletedAt *string   `json:"completedAt"`
	Tasks       []taskDTO `json:"tasks"`
}

// taskDTO matches a task nested in a project record.
type taskDTO struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}
