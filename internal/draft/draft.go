// Package draft assembles a task in memory before it is persisted.
package draft

import (
	"uadmin/internal/domain"
	"uadmin/internal/validation"
)

// Builder holds one in-progress task and the rules of the flow using it.
// A Builder is not safe for concurrent use; the owning flow serialises access.
type Builder struct {
	rules       *validation.Rules
	title       string
	description string
	status      domain.Status
}

// New creates an empty draft validated with rules.
func New(rules *validation.Rules) *Builder {
	return &Builder{rules: rules, status: domain.StatusPending}
}

// SetTitle updates the title and returns its live validation message.
func (b *Builder) SetTitle(v string) string {
	b.title = v
	return b.rules.Validate(validation.FieldTitle, v)
}

// SetDescription updates the description and returns its live validation message.
func (b *Builder) SetDescription(v string) string {
	b.description = v
	return b.rules.Validate(validation.FieldDescription, v)
}

// SetStatus updates the status. Any enumerated status is valid.
func (b *Builder) SetStatus(s domain.Status) {
	b.status = s
}

// Task returns the draft as an unsaved task.
func (b *Builder) Task() domain.Task {
	return domain.Task{
		Title:       b.title,
		Description: b.description,
		Status:      b.status,
	}
}

// Check validates title and description without changing anything.
func (b *Builder) Check() error {
	return b.rules.ValidateTask(b.title, b.description)
}

// Reset returns the draft to its default: empty text, Pendiente.
func (b *Builder) Reset() {
	b.title = ""
	b.description = ""
	b.status = domain.StatusPending
}

// AppendTo validates the draft and, when it passes, returns tasks with a
// copy of the draft appended and resets the draft. On failure the draft and
// tasks are untouched and the *validation.ValidationError is returned.
func (b *Builder) AppendTo(tasks []domain.Task) ([]domain.Task, error) {
	if err := b.Check(); err != nil {
		return tasks, err
	}
	out := make([]domain.Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	out = append(out, b.Task())
	b.Reset()
	return out, nil
}
