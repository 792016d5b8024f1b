package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/services"
)

// ViewCommand handles the view command
type ViewCommand struct {
	app    *App
	format string
}

// NewViewCommand creates a new view command handler
func NewViewCommand(app *App, format string) *ViewCommand {
	return &ViewCommand{app: app, format: format}
}

// Execute runs the view command
func (c *ViewCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	if len(args) != 1 {
		return eh.HandleSimple(apperrors.NewInvalidInputError("args", args, "expected one user id"))
	}
	id, err := parseID("user", args[0])
	if err != nil {
		return eh.HandleSimple(err)
	}

	u, err := c.app.findUser(ctx, c.app.newBoard(), id)
	if err != nil {
		return eh.Handle("view user", err)
	}
	view := services.NewView(u)

	switch c.format {
	case "", FormatTable:
		fmt.Fprint(c.app.out, c.render(view))
		return nil
	case FormatJSON:
		if u.Tasks == nil {
			u.Tasks = []domain.Task{}
		}
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(u)
	default:
		return eh.HandleSimple(apperrors.NewInvalidInputError("format", c.format, "must be table or json"))
	}
}

func (c *ViewCommand) render(v services.View) string {
	th := c.app.theme
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d\n", th.Label.Render("ID"), v.ID)
	fmt.Fprintf(&b, "%s%s\n", th.Label.Render("Nombre"), v.Name)
	fmt.Fprintf(&b, "%s%s\n", th.Label.Render("Email"), v.Email)
	if len(v.Tasks) == 0 {
		b.WriteString("El usuario no tiene tareas.\n")
		return b.String()
	}
	b.WriteString("Tareas:\n")
	for _, t := range v.Tasks {
		fmt.Fprintf(&b, "  #%d %s", t.ID, t.Title)
		if t.Description != "" {
			fmt.Fprintf(&b, " · %s", t.Description)
		}
		fmt.Fprintf(&b, " %s\n", th.Chip(t.Status))
	}
	return b.String()
}
