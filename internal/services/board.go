package services

import (
	"context"
	"sync"

	"uadmin/internal/domain"
	"uadmin/internal/gateway"
	"uadmin/internal/logging"
	"uadmin/internal/notify"
	"uadmin/internal/state"
	"uadmin/internal/table"
)

// Board owns the list state and hands out flows wired back into it.
type Board struct {
	mu    sync.Mutex
	gw    gateway.Gateway
	sink  notify.Sink
	state state.State
}

// NewBoard creates a board starting from initial.
func NewBoard(gw gateway.Gateway, sink notify.Sink, initial state.State) *Board {
	return &Board{gw: gw, sink: sink, state: initial}
}

// Load fetches every user and replaces the list. A failure keeps the
// current list and is notified.
func (b *Board) Load(ctx context.Context) error {
	users, err := b.gw.ListUsers(ctx)
	if err != nil {
		reportFailure(b.sink, "load users", err, msgLoadFailed)
		return err
	}
	b.Dispatch(state.Loaded{Users: users})
	return nil
}

// Refresh reloads the list after a change. Failures are only logged.
func (b *Board) Refresh(ctx context.Context) {
	users, err := b.gw.ListUsers(ctx)
	if err != nil {
		logging.Errorf("refresh users: %v", err)
		return
	}
	b.Dispatch(state.Loaded{Users: users})
}

// ReplaceUser stores a saved user.
func (b *Board) ReplaceUser(u domain.User) {
	b.Dispatch(state.UserSaved{User: u})
}

// RemoveUser drops a deleted user.
func (b *Board) RemoveUser(id int64) {
	b.Dispatch(state.UserRemoved{ID: id})
}

// Dispatch applies a and returns the new state.
func (b *Board) Dispatch(a state.Action) state.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state.Reduce(b.state, a)
	return b.state
}

// State returns the current state.
func (b *Board) State() state.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Page renders the current page.
func (b *Board) Page() table.Page {
	return b.State().View()
}

// User looks up a listed user.
func (b *Board) User(id int64) (domain.User, bool) {
	return b.State().User(id)
}

// AddFlow opens an add form that reloads the list once the user exists.
func (b *Board) AddFlow() *AddFlow {
	return NewAddFlow(b.gw, b.sink, b.Refresh)
}

// EditFlow opens user for editing; a save replaces it in the list.
func (b *Board) EditFlow(user domain.User) *EditFlow {
	return NewEditFlow(b.gw, b.sink, user, b.ReplaceUser)
}

// DeleteFlow opens a delete dialog that removes the user from the list on
// success.
func (b *Board) DeleteFlow() *DeleteFlow {
	return NewDeleteFlow(b.gw, b.sink, b.RemoveUser)
}
