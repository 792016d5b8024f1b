package tui

import (
	"context"
	"fmt"
	"strings"

	"uadmin/internal/domain"
	"uadmin/internal/services"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const actionSubmit = "submit"

// addDialog creates a user with any number of drafted tasks.
type addDialog struct {
	flow *services.AddFlow
	keys formKeys
	form form

	name, email, password *input
	title, description    *input
	status                *selector
}

func newAddDialog(flow *services.AddFlow, keys formKeys) *addDialog {
	d := &addDialog{flow: flow, keys: keys}
	d.name = newInput("Nombre", flow.SetName)
	d.email = newInput("Email", flow.SetEmail)
	d.password = newSecretInput("Contraseña", flow.SetPassword)
	d.title = newInput("Título", flow.SetDraftTitle)
	d.description = newInput("Descripción", flow.SetDraftDescription)
	d.status = newSelector("Estado", flow.SetDraftStatus)
	d.form.setItems([]formItem{d.name, d.email, d.password, d.title, d.description, d.status})
	return d
}

func (d *addDialog) inDraft() bool {
	switch d.form.focused() {
	case d.title, d.description, d.status:
		return true
	}
	return false
}

func (d *addDialog) update(ctx context.Context, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case flowMsg:
		// A created user cannot be submitted again, even after a partial failure.
		_, created := d.flow.Created()
		return created, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Cancel):
			// A pending submit keeps running and still refreshes the board.
			return true, nil
		case key.Matches(msg, d.keys.Submit):
			if d.flow.Busy() {
				return false, nil
			}
			return false, d.submit(ctx)
		case key.Matches(msg, d.keys.AddTask),
			key.Matches(msg, d.keys.Confirm) && d.inDraft():
			d.addDraft()
		case key.Matches(msg, d.keys.Confirm):
			d.form.move(1)
		default:
			d.form.update(msg, d.keys)
		}
	}
	return false, nil
}

func (d *addDialog) addDraft() {
	if err := d.flow.AddDraft(); err != nil {
		d.title.change(d.title.value())
		d.description.change(d.description.value())
		return
	}
	draft := d.flow.Draft()
	d.title.reset(draft.Title)
	d.description.reset(draft.Description)
	d.status.value = draft.Status
	d.form.focusOn(d.title)
}

func (d *addDialog) submit(ctx context.Context) tea.Cmd {
	// Surface every field message, including untouched ones.
	for _, in := range []*input{d.name, d.email, d.password} {
		in.change(in.value())
	}
	flow := d.flow
	return func() tea.Msg {
		return flowMsg{target: d, action: actionSubmit, err: flow.Submit(ctx)}
	}
}

func (d *addDialog) view(th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Agregar Usuario"))
	b.WriteString("\n")
	b.WriteString(d.form.view(th, 0, 3))
	b.WriteString("\n\n")
	b.WriteString(th.Header.UnsetPadding().Render("Nueva tarea"))
	b.WriteString("\n")
	b.WriteString(d.form.view(th, 3, 6))
	b.WriteString("\n\n")

	tasks := d.flow.Tasks()
	if len(tasks) == 0 {
		b.WriteString(th.Muted.Render("Sin tareas agregadas."))
	} else {
		b.WriteString(th.Header.UnsetPadding().Render(fmt.Sprintf("Tareas (%d)", len(tasks))))
		for _, t := range tasks {
			b.WriteString("\n")
			b.WriteString(taskLine(th, t))
		}
	}
	b.WriteString("\n\n")
	if d.flow.Busy() {
		b.WriteString(th.Muted.Render("Guardando… · esc cerrar"))
	} else {
		b.WriteString(th.Muted.Render("enter/ctrl+n agregar tarea · ctrl+s guardar · esc cerrar"))
	}
	return th.Box.Render(b.String())
}

func taskLine(th Theme, t domain.Task) string {
	line := "• " + t.Title
	if t.Description != "" {
		line += th.Muted.Render(" · " + t.Description)
	}
	return line + " " + th.Chip(t.Status)
}
