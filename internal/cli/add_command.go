package cli

import (
	"context"
	"fmt"
	"strings"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/services"
)

// AddOptions is the add-user form filled from flags
type AddOptions struct {
	Name     string
	Email    string
	Password string
	// Tasks are "title|description|status" specs; description and status
	// may be omitted.
	Tasks []string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	flow := services.NewAddFlow(c.app.gateway, c.app.sink, nil)

	flow.SetName(c.opts.Name)
	flow.SetEmail(c.opts.Email)
	flow.SetPassword(c.opts.Password)

	for _, arg := range c.opts.Tasks {
		task, err := parseTaskArg(arg)
		if err != nil {
			return eh.HandleSimple(err)
		}
		flow.SetDraftTitle(task.Title)
		flow.SetDraftDescription(task.Description)
		flow.SetDraftStatus(task.Status)
		if err := flow.AddDraft(); err != nil {
			return eh.Handle(fmt.Sprintf("add task %q", task.Title), err)
		}
	}

	err := flow.Submit(ctx)
	if u, ok := flow.Created(); ok {
		fmt.Fprintf(c.app.out, "Usuario #%d creado con %d tareas\n", u.ID, len(u.Tasks))
	}
	if err != nil {
		return eh.Handle("add user", err)
	}
	return nil
}

// parseTaskArg reads "title|description|status". Missing parts default to
// an empty description and the pending status.
func parseTaskArg(arg string) (domain.Task, error) {
	parts := strings.SplitN(arg, "|", 3)
	task := domain.NewTask(strings.TrimSpace(parts[0]), "")
	if len(parts) > 1 {
		task.Description = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		s, err := domain.ParseStatus(strings.TrimSpace(parts[2]))
		if err != nil {
			return domain.Task{}, apperrors.NewInvalidInputError("task status", parts[2], err.Error())
		}
		task.Status = s
	}
	return task, nil
}
