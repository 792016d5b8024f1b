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

const (
	actionAddTask    = "add-task"
	actionDeleteTask = "delete-task"
	actionSave       = "save"
)

const confirmTaskDelete = "¿Estás seguro de que deseas eliminar esta tarea?"

// editDialog edits one user. Task additions and deletions are sent right
// away; everything else waits for save.
type editDialog struct {
	flow *services.EditFlow
	keys formKeys
	form form

	name, email      *input
	taskTitle        *input
	taskDescription  *input
	taskStatus       *selector
	title            *input
	description      *input
	status           *selector
	selected         int
	confirmingDelete bool
}

func newEditDialog(flow *services.EditFlow, keys formKeys) *editDialog {
	d := &editDialog{flow: flow, keys: keys}
	u := flow.User()

	d.name = newInput("Nombre", flow.SetName)
	d.name.reset(u.Name)
	d.email = newInput("Email", flow.SetEmail)
	d.email.reset(u.Email)

	d.taskTitle = newInput("Título", func(v string) string {
		msg, _ := flow.SetTaskTitle(d.selectedID(), v)
		return msg
	})
	d.taskDescription = newInput("Descripción", func(v string) string {
		msg, _ := flow.SetTaskDescription(d.selectedID(), v)
		return msg
	})
	d.taskStatus = newSelector("Estado", func(s domain.Status) {
		_ = flow.SetTaskStatus(d.selectedID(), s)
	})

	d.title = newInput("Título", flow.SetDraftTitle)
	d.description = newInput("Descripción", flow.SetDraftDescription)
	d.status = newSelector("Estado", flow.SetDraftStatus)

	d.loadSelected()
	d.rebuild()
	return d
}

func (d *editDialog) tasks() []domain.Task {
	return d.flow.User().Tasks
}

func (d *editDialog) selectedID() int64 {
	tasks := d.tasks()
	if d.selected < 0 || d.selected >= len(tasks) {
		return 0
	}
	return tasks[d.selected].ID
}

// loadSelected copies the selected task into the task inputs.
func (d *editDialog) loadSelected() {
	tasks := d.tasks()
	if d.selected >= len(tasks) {
		d.selected = len(tasks) - 1
	}
	if d.selected < 0 {
		d.selected = 0
	}
	if len(tasks) == 0 {
		return
	}
	t := tasks[d.selected]
	d.taskTitle.reset(t.Title)
	d.taskDescription.reset(t.Description)
	d.taskStatus.value = t.Status
}

// rebuild lays out the items. The task section only exists while the user
// has tasks.
func (d *editDialog) rebuild() {
	items := []formItem{d.name, d.email}
	if len(d.tasks()) > 0 {
		items = append(items, d.taskTitle, d.taskDescription, d.taskStatus)
	}
	items = append(items, d.title, d.description, d.status)
	d.form.setItems(items)
}

func (d *editDialog) inDraft() bool {
	switch d.form.focused() {
	case d.title, d.description, d.status:
		return true
	}
	return false
}

func (d *editDialog) update(ctx context.Context, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case flowMsg:
		return d.finished(msg), nil
	case tea.KeyMsg:
		if d.confirmingDelete {
			return false, d.answerDelete(ctx, msg)
		}
		switch {
		case key.Matches(msg, d.keys.Cancel):
			// Pending requests finish in the background; a late save still
			// reaches the board through the flow's callback.
			return true, nil
		case key.Matches(msg, d.keys.Submit):
			return false, d.run(ctx, actionSave, d.flow.Save)
		case key.Matches(msg, d.keys.AddTask),
			key.Matches(msg, d.keys.Confirm) && d.inDraft():
			return false, d.run(ctx, actionAddTask, d.flow.AddTask)
		case key.Matches(msg, d.keys.DeleteTask):
			if len(d.tasks()) > 0 {
				d.confirmingDelete = true
			}
		case key.Matches(msg, d.keys.NextTask):
			d.pick(1)
		case key.Matches(msg, d.keys.PrevTask):
			d.pick(-1)
		case key.Matches(msg, d.keys.Confirm):
			d.form.move(1)
		default:
			d.form.update(msg, d.keys)
		}
	}
	return false, nil
}

func (d *editDialog) pick(delta int) {
	n := len(d.tasks())
	if n == 0 {
		return
	}
	d.selected = (d.selected + delta + n) % n
	d.loadSelected()
}

func (d *editDialog) answerDelete(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keys.Yes):
		d.confirmingDelete = false
		id := d.selectedID()
		return d.run(ctx, actionDeleteTask, func(ctx context.Context) error {
			return d.flow.DeleteTask(ctx, id)
		})
	case key.Matches(msg, d.keys.No):
		d.confirmingDelete = false
	}
	return nil
}

func (d *editDialog) run(ctx context.Context, action string, fn func(context.Context) error) tea.Cmd {
	if action == actionSave {
		d.name.change(d.name.value())
		d.email.change(d.email.value())
	}
	return func() tea.Msg {
		return flowMsg{target: d, action: action, err: fn(ctx)}
	}
}

// finished applies the outcome of a request and reports whether the dialog
// closes.
func (d *editDialog) finished(msg flowMsg) bool {
	switch msg.action {
	case actionSave:
		return msg.err == nil && d.flow.Phase() == services.PhaseSucceeded
	case actionAddTask:
		if msg.err != nil {
			d.title.change(d.title.value())
			d.description.change(d.description.value())
			return false
		}
		draft := d.flow.Draft()
		d.title.reset(draft.Title)
		d.description.reset(draft.Description)
		d.status.value = draft.Status
	}
	d.loadSelected()
	d.rebuild()
	return false
}

func (d *editDialog) view(th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render(fmt.Sprintf("Editar Usuario #%d", d.flow.User().ID)))
	b.WriteString("\n")
	b.WriteString(d.form.view(th, 0, 2))
	b.WriteString("\n\n")

	draftFrom := 2
	tasks := d.tasks()
	if len(tasks) == 0 {
		b.WriteString(th.Muted.Render("El usuario no tiene tareas."))
	} else {
		draftFrom = 5
		b.WriteString(th.Header.UnsetPadding().Render(fmt.Sprintf("Tarea %d de %d", d.selected+1, len(tasks))))
		b.WriteString("\n")
		b.WriteString(d.form.view(th, 2, 5))
	}
	b.WriteString("\n\n")
	b.WriteString(th.Header.UnsetPadding().Render("Nueva tarea"))
	b.WriteString("\n")
	b.WriteString(d.form.view(th, draftFrom, draftFrom+3))
	b.WriteString("\n\n")

	switch {
	case d.confirmingDelete:
		b.WriteString(th.FieldErr.Render(confirmTaskDelete + " [s/N]"))
	case d.flow.Busy():
		b.WriteString(th.Muted.Render("Guardando… · esc cerrar"))
	default:
		b.WriteString(th.Muted.Render("pgup/pgdown tarea · ctrl+n agregar · ctrl+d eliminar · ctrl+s guardar · esc cerrar"))
	}
	return th.Box.Render(b.String())
}
