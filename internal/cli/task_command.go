package cli

import (
	"context"
	"fmt"
	"strconv"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/validation"
)

// TaskUpdateOptions holds the task fields to change. Nil fields keep their
// current value.
type TaskUpdateOptions struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskUpdateCommand handles the task update command
type TaskUpdateCommand struct {
	app  *App
	opts TaskUpdateOptions
}

// NewTaskUpdateCommand creates a new task update command handler
func NewTaskUpdateCommand(app *App, opts TaskUpdateOptions) *TaskUpdateCommand {
	return &TaskUpdateCommand{app: app, opts: opts}
}

// Execute runs the task update command
func (c *TaskUpdateCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	if len(args) != 1 {
		return eh.HandleSimple(apperrors.NewInvalidInputError("args", args, "expected one task id"))
	}
	id, err := parseID("task", args[0])
	if err != nil {
		return eh.HandleSimple(err)
	}

	task, err := c.findTask(ctx, id)
	if err != nil {
		return eh.Handle("update task", err)
	}

	if c.opts.Title != nil {
		task.Title = *c.opts.Title
	}
	if c.opts.Description != nil {
		task.Description = *c.opts.Description
	}
	if c.opts.Status != nil {
		s, err := domain.ParseStatus(*c.opts.Status)
		if err != nil {
			return eh.HandleSimple(apperrors.NewInvalidInputError("task status", *c.opts.Status, err.Error()))
		}
		task.Status = s
	}
	if err := validation.EditRules.ValidateTask(task.Title, task.Description); err != nil {
		return eh.Handle("update task", err)
	}

	updated, err := c.app.gateway.UpdateTask(ctx, task)
	if err != nil {
		return eh.Handle("update task", err)
	}
	fmt.Fprintf(c.app.out, "Tarea #%d actualizada: %s %s\n", updated.ID, updated.Title, c.app.theme.Chip(updated.Status))
	return nil
}

// findTask looks the task up through its owner, as the API has no single
// task read.
func (c *TaskUpdateCommand) findTask(ctx context.Context, id int64) (domain.Task, error) {
	users, err := c.app.gateway.ListUsers(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	for _, u := range users {
		if i := u.TaskIndex(id); i >= 0 {
			t := u.Tasks[i]
			t.UserID = u.ID
			return t, nil
		}
	}
	return domain.Task{}, apperrors.NewNotFoundError("task", strconv.FormatInt(id, 10))
}
