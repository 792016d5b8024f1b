package services

import (
	"context"
	"sync"

	"uadmin/internal/domain"
	"uadmin/internal/draft"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/notify"
	"uadmin/internal/validation"
)

// EditFlow edits one user. Task additions and deletions are sent as soon as
// they are made; name, email and changes to existing tasks wait for Save.
type EditFlow struct {
	mu     sync.Mutex
	gw     gateway.Gateway
	sink   notify.Sink
	onSave func(domain.User)

	id    int64
	name  string
	email string
	tasks []domain.Task
	draft *draft.Builder

	phase    Phase
	inflight inflight
}

// NewEditFlow opens user for editing. onSave, when non-nil, receives the
// saved user.
func NewEditFlow(gw gateway.Gateway, sink notify.Sink, user domain.User, onSave func(domain.User)) *EditFlow {
	u := user.Clone()
	return &EditFlow{
		gw:       gw,
		sink:     sink,
		onSave:   onSave,
		id:       u.ID,
		name:     u.Name,
		email:    u.Email,
		tasks:    u.Tasks,
		draft:    draft.New(validation.EditRules),
		inflight: inflight{},
	}
}

// User returns the user as it would be saved now.
func (f *EditFlow) User() domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *EditFlow) snapshot() domain.User {
	return domain.User{
		ID:    f.id,
		Name:  f.name,
		Email: f.email,
		Tasks: append([]domain.Task{}, f.tasks...),
	}
}

// SetName updates the name and returns its live validation message.
func (f *EditFlow) SetName(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = v
	return validation.EditRules.Validate(validation.FieldName, v)
}

// SetEmail updates the email and returns its live validation message.
func (f *EditFlow) SetEmail(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = v
	return validation.EditRules.Validate(validation.FieldEmail, v)
}

// SetTaskTitle buffers a new title for an existing task.
func (f *EditFlow) SetTaskTitle(id int64, v string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.taskIndex(id)
	if err != nil {
		return "", err
	}
	f.tasks[i].Title = v
	return validation.EditRules.Validate(validation.FieldTitle, v), nil
}

// SetTaskDescription buffers a new description for an existing task.
func (f *EditFlow) SetTaskDescription(id int64, v string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.taskIndex(id)
	if err != nil {
		return "", err
	}
	f.tasks[i].Description = v
	return validation.EditRules.Validate(validation.FieldDescription, v), nil
}

// SetTaskStatus buffers a new status for an existing task.
func (f *EditFlow) SetTaskStatus(id int64, s domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.taskIndex(id)
	if err != nil {
		return err
	}
	f.tasks[i].Status = s
	return nil
}

func (f *EditFlow) taskIndex(id int64) (int, error) {
	for i, t := range f.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, apperrors.NewNotFoundError("task", formatID(id))
}

// SetDraftTitle updates the title of the task to add.
func (f *EditFlow) SetDraftTitle(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.SetTitle(v)
}

// SetDraftDescription updates the description of the task to add.
func (f *EditFlow) SetDraftDescription(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.SetDescription(v)
}

// SetDraftStatus updates the status of the task to add.
func (f *EditFlow) SetDraftStatus(s domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.SetStatus(s)
}

// Draft returns the task to add.
func (f *EditFlow) Draft() domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Task()
}

// Phase returns the phase of the save cycle.
func (f *EditFlow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Busy reports whether any request of this flow is outstanding.
func (f *EditFlow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inflight.any()
}

// begin claims a for this flow. Task round trips may overlap each other,
// but Save sends the whole task list and so excludes every other request.
// Callers hold f.mu.
func (f *EditFlow) begin(a action) bool {
	if a == actionSave && f.inflight.any() {
		return false
	}
	if a != actionSave && f.inflight[actionSave] {
		return false
	}
	return f.inflight.begin(a)
}

// AddTask validates the draft and creates it remotely right away. On
// success the returned task joins the list and the draft is reset.
func (f *EditFlow) AddTask(ctx context.Context) error {
	f.mu.Lock()
	if !f.begin(actionAddTask) {
		f.mu.Unlock()
		return ErrBusy
	}
	if err := f.draft.Check(); err != nil {
		f.inflight.end(actionAddTask)
		f.mu.Unlock()
		f.sink.Notify(msgEditTaskInvalid, notify.Error)
		return err
	}
	payload := gateway.NewTaskFor(f.id, f.draft.Task())
	f.mu.Unlock()

	task, err := f.gw.CreateTask(ctx, payload)

	f.mu.Lock()
	f.inflight.end(actionAddTask)
	if err == nil {
		f.tasks = append(f.tasks, *task)
		f.draft.Reset()
	}
	f.mu.Unlock()

	if err != nil {
		reportFailure(f.sink, "create task", err, msgTaskAddFailed)
		return err
	}
	f.sink.Notify(msgDraftAdded, notify.Success)
	return nil
}

// DeleteTask deletes a task remotely right away and drops it from the list
// on success.
func (f *EditFlow) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	if _, err := f.taskIndex(id); err != nil {
		f.mu.Unlock()
		return err
	}
	if !f.begin(actionDeleteTask) {
		f.mu.Unlock()
		return ErrBusy
	}
	f.mu.Unlock()

	err := f.gw.DeleteTask(ctx, id)

	f.mu.Lock()
	f.inflight.end(actionDeleteTask)
	if err == nil {
		if i, lookupErr := f.taskIndex(id); lookupErr == nil {
			f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
		}
	}
	f.mu.Unlock()

	if err != nil {
		reportFailure(f.sink, "delete task", err, msgTaskDelFailed)
		return err
	}
	f.sink.Notify(msgTaskDeleted, notify.Success)
	return nil
}

// Save validates name and email and sends the whole user, including the
// buffered task edits, in one update.
func (f *EditFlow) Save(ctx context.Context) error {
	f.mu.Lock()
	if !f.begin(actionSave) {
		f.mu.Unlock()
		return ErrBusy
	}
	if err := validation.ValidateUserUpdate(f.name, f.email); err != nil {
		f.inflight.end(actionSave)
		f.phase = PhaseEditing
		f.mu.Unlock()
		f.sink.Notify(msgEditFormInvalid, notify.Error)
		return err
	}
	updated := f.snapshot()
	f.phase = PhaseSubmitting
	f.mu.Unlock()

	_, err := f.gw.UpdateUser(ctx, updated)

	f.mu.Lock()
	f.inflight.end(actionSave)
	if err != nil {
		f.phase = PhaseFailed
	} else {
		f.phase = PhaseSucceeded
	}
	f.mu.Unlock()

	if err != nil {
		reportFailure(f.sink, "update user", err, msgSaveFailed)
		return err
	}
	if f.onSave != nil {
		f.onSave(updated)
	}
	f.sink.Notify(msgSaved, notify.Success)
	return nil
}
