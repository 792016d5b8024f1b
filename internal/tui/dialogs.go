package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uadmin/internal/domain"
	"uadmin/internal/services"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const actionConfirm = "confirm"

// deleteDialog asks before deleting a user.
type deleteDialog struct {
	flow *services.DeleteFlow
	keys formKeys
}

func newDeleteDialog(flow *services.DeleteFlow, keys formKeys) *deleteDialog {
	return &deleteDialog{flow: flow, keys: keys}
}

func (d *deleteDialog) update(ctx context.Context, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case flowMsg:
		// A repeated confirm is refused by the flow; wait for the first one.
		return !errors.Is(msg.err, services.ErrBusy), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.No):
			// Cancel is a no-op while the request is out; it still completes.
			d.flow.Cancel()
			return true, nil
		case key.Matches(msg, d.keys.Yes) && !d.flow.Busy():
			flow := d.flow
			return false, func() tea.Msg {
				return flowMsg{target: d, action: actionConfirm, err: flow.Confirm(ctx)}
			}
		}
	}
	return false, nil
}

func (d *deleteDialog) view(th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Confirmar eliminación"))
	b.WriteString("\n")
	b.WriteString(d.flow.Prompt())
	b.WriteString("\n\n")
	if d.flow.Busy() {
		b.WriteString(th.Muted.Render("Eliminando… · esc cerrar"))
	} else {
		b.WriteString(th.Muted.Render("s/enter eliminar · n/esc cancelar"))
	}
	return th.Box.Render(b.String())
}

// viewDialog shows a user read-only.
type viewDialog struct {
	flow *services.ViewFlow
	keys formKeys
}

func newViewDialog(user domain.User, keys formKeys) *viewDialog {
	d := &viewDialog{flow: &services.ViewFlow{}, keys: keys}
	d.flow.Open(user)
	return d
}

func (d *viewDialog) update(_ context.Context, msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, d.keys.Cancel) || key.Matches(msg, d.keys.Confirm) {
			d.flow.Close()
			return true, nil
		}
	}
	return false, nil
}

func (d *viewDialog) view(th Theme) string {
	v, ok := d.flow.Current()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(th.Title.Render("Detalles del Usuario"))
	b.WriteString("\n")
	b.WriteString(th.Label.Render("ID") + fmt.Sprint(v.ID) + "\n")
	b.WriteString(th.Label.Render("Nombre") + v.Name + "\n")
	b.WriteString(th.Label.Render("Email") + v.Email + "\n\n")
	if len(v.Tasks) == 0 {
		b.WriteString(th.Muted.Render("El usuario no tiene tareas."))
	} else {
		b.WriteString(th.Header.UnsetPadding().Render("Tareas"))
		for _, t := range v.Tasks {
			b.WriteString("\n")
			b.WriteString(taskLine(th, t.Task))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(th.Muted.Render("esc/enter cerrar"))
	return th.Box.Render(b.String())
}
