// Package gateway is the boundary to the remote users/tasks API.
package gateway

import (
	"context"

	"uadmin/internal/domain"
)

// Gateway is the remote API as the flows see it. Every call may fail with a
// transport error or a *StatusError.
type Gateway interface {
	// ListUsers fetches every user with its tasks embedded.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// CreateUser creates a user and returns it with its assigned ID.
	CreateUser(ctx context.Context, u NewUser) (*domain.User, error)
	// UpdateUser replaces name, email and the full task list of u.
	UpdateUser(ctx context.Context, u domain.User) (*domain.User, error)
	// DeleteUser removes a user and, remotely, its tasks.
	DeleteUser(ctx context.Context, id int64) error
	// CreateTask creates a task for an existing user.
	CreateTask(ctx context.Context, t NewTask) (*domain.Task, error)
	// UpdateTask replaces the title, description and status of a task.
	UpdateTask(ctx context.Context, t domain.Task) (*domain.Task, error)
	// DeleteTask removes one task.
	DeleteTask(ctx context.Context, id int64) error
}

// NewUser is the create-user payload. Password is write-only.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewTask is the create-task payload.
type NewTask struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	UserID      int64         `json:"userId"`
}

// NewTaskFor builds the create payload for a drafted task owned by userID.
func NewTaskFor(userID int64, t domain.Task) NewTask {
	return NewTask{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		UserID:      userID,
	}
}
