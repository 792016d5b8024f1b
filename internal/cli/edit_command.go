package cli

import (
	"context"
	"fmt"
	"sort"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/services"
)

// EditOptions describes the changes to one user. Nil fields are left
// untouched; task maps are keyed by task ID.
type EditOptions struct {
	Name         *string
	Email        *string
	Titles       map[string]string
	Descriptions map[string]string
	Statuses     map[string]string
	AddTasks     []string
	DeleteTasks  []int64
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute runs the edit command. Task deletions and additions are sent as
// they are applied; the remaining changes are saved in one update at the end.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	if len(args) != 1 {
		return eh.HandleSimple(apperrors.NewInvalidInputError("args", args, "expected one user id"))
	}
	id, err := parseID("user", args[0])
	if err != nil {
		return eh.HandleSimple(err)
	}

	board := c.app.newBoard()
	user, err := c.app.findUser(ctx, board, id)
	if err != nil {
		return eh.Handle("edit user", err)
	}
	flow := services.NewEditFlow(c.app.gateway, c.app.sink, user, nil)

	if c.opts.Name != nil {
		flow.SetName(*c.opts.Name)
	}
	if c.opts.Email != nil {
		flow.SetEmail(*c.opts.Email)
	}
	if err := c.applyTaskEdits(flow); err != nil {
		return eh.HandleSimple(err)
	}

	for _, taskID := range c.opts.DeleteTasks {
		if err := flow.DeleteTask(ctx, taskID); err != nil {
			return eh.Handle(fmt.Sprintf("delete task %d", taskID), err)
		}
	}
	for _, arg := range c.opts.AddTasks {
		task, err := parseTaskArg(arg)
		if err != nil {
			return eh.HandleSimple(err)
		}
		flow.SetDraftTitle(task.Title)
		flow.SetDraftDescription(task.Description)
		flow.SetDraftStatus(task.Status)
		if err := flow.AddTask(ctx); err != nil {
			return eh.Handle(fmt.Sprintf("add task %q", task.Title), err)
		}
	}

	if err := flow.Save(ctx); err != nil {
		return eh.Handle("save user", err)
	}
	saved := flow.User()
	fmt.Fprintf(c.app.out, "Usuario #%d guardado con %d tareas\n", saved.ID, len(saved.Tasks))
	return nil
}

func (c *EditCommand) applyTaskEdits(flow *services.EditFlow) error {
	for _, key := range sortedKeys(c.opts.Titles) {
		id, err := parseID("task", key)
		if err != nil {
			return err
		}
		if _, err := flow.SetTaskTitle(id, c.opts.Titles[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(c.opts.Descriptions) {
		id, err := parseID("task", key)
		if err != nil {
			return err
		}
		if _, err := flow.SetTaskDescription(id, c.opts.Descriptions[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(c.opts.Statuses) {
		id, err := parseID("task", key)
		if err != nil {
			return err
		}
		s, err := domain.ParseStatus(c.opts.Statuses[key])
		if err != nil {
			return apperrors.NewInvalidInputError("task status", c.opts.Statuses[key], err.Error())
		}
		if err := flow.SetTaskStatus(id, s); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
