package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"uadmin/internal/domain"
	"uadmin/internal/draft"
	"uadmin/internal/gateway"
	"uadmin/internal/logging"
	"uadmin/internal/notify"
	"uadmin/internal/validation"
)

// AddFlow creates a user and then each drafted task for it.
type AddFlow struct {
	mu      sync.Mutex
	gw      gateway.Gateway
	sink    notify.Sink
	refresh func(context.Context)

	name     string
	email    string
	password string
	draft    *draft.Builder
	tasks    []domain.Task

	phase   Phase
	created *domain.User
}

// NewAddFlow returns an empty add form. refresh, when non-nil, is called
// after the user has been created, whether or not every task followed.
func NewAddFlow(gw gateway.Gateway, sink notify.Sink, refresh func(context.Context)) *AddFlow {
	return &AddFlow{
		gw:      gw,
		sink:    sink,
		refresh: refresh,
		draft:   draft.New(validation.CreateRules),
	}
}

// SetName updates the name and returns its live validation message.
func (f *AddFlow) SetName(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = v
	return validation.CreateRules.Validate(validation.FieldName, v)
}

// SetEmail updates the email and returns its live validation message.
func (f *AddFlow) SetEmail(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = v
	return validation.CreateRules.Validate(validation.FieldEmail, v)
}

// SetPassword updates the password and returns its live validation message.
func (f *AddFlow) SetPassword(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = v
	return validation.CreateRules.Validate(validation.FieldPassword, v)
}

// SetDraftTitle updates the draft task title.
func (f *AddFlow) SetDraftTitle(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.SetTitle(v)
}

// SetDraftDescription updates the draft task description.
func (f *AddFlow) SetDraftDescription(v string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.SetDescription(v)
}

// SetDraftStatus updates the draft task status.
func (f *AddFlow) SetDraftStatus(s domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.SetStatus(s)
}

// Draft returns the task being drafted.
func (f *AddFlow) Draft() domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Task()
}

// AddDraft moves the draft into the local task list. Nothing is sent until
// Submit.
func (f *AddFlow) AddDraft() error {
	f.mu.Lock()
	tasks, err := f.draft.AppendTo(f.tasks)
	if err == nil {
		f.tasks = tasks
	}
	f.mu.Unlock()

	if err != nil {
		f.sink.Notify(msgDraftInvalid, notify.Error)
		return err
	}
	f.sink.Notify(msgDraftAdded, notify.Success)
	return nil
}

// Tasks returns the drafted tasks in the order they will be created.
func (f *AddFlow) Tasks() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...)
}

// Phase returns the current phase.
func (f *AddFlow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Busy reports whether a submit is outstanding.
func (f *AddFlow) Busy() bool {
	return f.Phase() == PhaseSubmitting
}

// Created returns the user once it exists remotely, with the tasks that
// were created for it.
func (f *AddFlow) Created() (domain.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		return domain.User{}, false
	}
	return f.created.Clone(), true
}

// Submit validates the form, creates the user and then creates each drafted
// task in order. A failed task does not stop the remaining ones and nothing
// is rolled back; the result is reported with a single notification.
func (f *AddFlow) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.phase == PhaseSubmitting:
		f.mu.Unlock()
		return ErrBusy
	case f.created != nil:
		f.mu.Unlock()
		return ErrAlreadyCreated
	}
	if err := validation.ValidateNewUser(f.name, f.email, f.password); err != nil {
		f.phase = PhaseEditing
		f.mu.Unlock()
		f.sink.Notify(msgFormInvalid, notify.Error)
		return err
	}
	payload := gateway.NewUser{Name: f.name, Email: f.email, Password: f.password}
	tasks := append([]domain.Task(nil), f.tasks...)
	f.phase = PhaseSubmitting
	f.mu.Unlock()

	user, err := f.gw.CreateUser(ctx, payload)
	if err != nil {
		f.setPhase(PhaseFailed)
		reportFailure(f.sink, "create user", err, msgUserAddFailed)
		return err
	}
	logging.Debugf("add: created user %d, creating %d tasks\n", user.ID, len(tasks))

	created := user.Clone()
	var failures []error
	for _, t := range tasks {
		task, err := f.gw.CreateTask(ctx, gateway.NewTaskFor(user.ID, t))
		if err != nil {
			logging.Errorf("create task %q for user %d: %v", t.Title, user.ID, err)
			failures = append(failures, err)
			continue
		}
		created.Tasks = append(created.Tasks, *task)
	}

	f.mu.Lock()
	f.created = &created
	if len(failures) > 0 {
		f.phase = PhaseFailed
	} else {
		f.phase = PhaseSucceeded
		f.name, f.email, f.password = "", "", ""
		f.tasks = nil
		f.draft.Reset()
	}
	f.mu.Unlock()

	if len(failures) > 0 {
		f.sink.Notify(msgUserAddFailed, notify.Error)
	} else {
		f.sink.Notify(msgUserAdded, notify.Success)
	}
	if f.refresh != nil {
		f.refresh(ctx)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d failed: %w", ErrPartialCreate, len(failures), len(tasks), errors.Join(failures...))
	}
	return nil
}

func (f *AddFlow) setPhase(p Phase) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = p
}
