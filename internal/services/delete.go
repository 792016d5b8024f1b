package services

import (
	"context"
	"strconv"
	"sync"

	"uadmin/internal/domain"
	"uadmin/internal/gateway"
	"uadmin/internal/notify"
)

// DeleteFlow asks for confirmation and then deletes one user.
type DeleteFlow struct {
	mu        sync.Mutex
	gw        gateway.Gateway
	sink      notify.Sink
	onDeleted func(id int64)

	target *domain.User
	phase  Phase
}

// NewDeleteFlow returns a closed delete dialog. onDeleted, when non-nil, is
// called with the ID of a user the API confirmed as deleted.
func NewDeleteFlow(gw gateway.Gateway, sink notify.Sink, onDeleted func(id int64)) *DeleteFlow {
	return &DeleteFlow{gw: gw, sink: sink, onDeleted: onDeleted}
}

// Open selects user and waits for confirmation.
func (f *DeleteFlow) Open(user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhaseSubmitting {
		return ErrBusy
	}
	u := user.Clone()
	f.target = &u
	f.phase = PhaseEditing
	return nil
}

// Target returns the selected user.
func (f *DeleteFlow) Target() (domain.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.target == nil {
		return domain.User{}, false
	}
	return *f.target, true
}

// Prompt is the confirmation text naming the selected user.
func (f *DeleteFlow) Prompt() string {
	u, ok := f.Target()
	if !ok {
		return ""
	}
	return "Estás a punto de eliminar al usuario con nombre: " + u.Name + "."
}

// Phase returns the current phase.
func (f *DeleteFlow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Busy reports whether the delete request is outstanding.
func (f *DeleteFlow) Busy() bool {
	return f.Phase() == PhaseSubmitting
}

// Cancel closes the dialog without deleting. It has no effect while the
// request is outstanding.
func (f *DeleteFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhaseSubmitting {
		return
	}
	f.target = nil
	f.phase = PhaseEditing
}

// Confirm deletes the selected user. The selection is cleared whatever the
// outcome; the user is only removed locally when the API confirmed it.
func (f *DeleteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.phase == PhaseSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.target == nil {
		f.mu.Unlock()
		return ErrNoSelection
	}
	id := f.target.ID
	f.phase = PhaseSubmitting
	f.mu.Unlock()

	err := f.gw.DeleteUser(ctx, id)

	f.mu.Lock()
	f.target = nil
	if err != nil {
		f.phase = PhaseFailed
	} else {
		f.phase = PhaseSucceeded
	}
	f.mu.Unlock()

	if err != nil {
		reportFailure(f.sink, "delete user "+formatID(id), err, msgUserDelFailed)
		return err
	}
	if f.onDeleted != nil {
		f.onDeleted(id)
	}
	f.sink.Notify(msgUserDeleted, notify.Success)
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
