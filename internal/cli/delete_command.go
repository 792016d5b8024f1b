package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	apperrors "uadmin/internal/errors"
	"uadmin/internal/services"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler. With yes set the
// confirmation prompt is skipped.
func NewDeleteCommand(app *App, yes bool) *DeleteCommand {
	return &DeleteCommand{app: app, yes: yes}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	if len(args) != 1 {
		return eh.HandleSimple(apperrors.NewInvalidInputError("args", args, "expected one user id"))
	}
	id, err := parseID("user", args[0])
	if err != nil {
		return eh.HandleSimple(err)
	}

	user, err := c.app.findUser(ctx, c.app.newBoard(), id)
	if err != nil {
		return eh.Handle("delete user", err)
	}

	flow := services.NewDeleteFlow(c.app.gateway, c.app.sink, nil)
	if err := flow.Open(user); err != nil {
		return eh.Handle("delete user", err)
	}

	if !c.yes && !c.confirm(flow.Prompt()) {
		flow.Cancel()
		fmt.Fprintln(c.app.out, "Eliminación cancelada.")
		return nil
	}

	if err := flow.Confirm(ctx); err != nil {
		return eh.Handle("delete user", err)
	}
	return nil
}

func (c *DeleteCommand) confirm(prompt string) bool {
	fmt.Fprintf(c.app.out, "%s ¿Continuar? [s/N]: ", prompt)
	answer, _ := bufio.NewReader(c.app.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
