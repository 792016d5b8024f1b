package domain

// Task is a unit of work owned by exactly one user.
// A task with ID 0 is an unsaved draft.
type Task struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	UserID      int64  `json:"userId,omitempty"`
}

// NewTask creates a draft task with the default status.
func NewTask(title, description string) Task {
	return Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
	}
}

// IsDraft reports whether the task has not been persisted yet.
func (t Task) IsDraft() bool {
	return t.ID == 0
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
