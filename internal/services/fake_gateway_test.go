package services

import (
	"context"
	"sync"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
)

// fakeGateway is an in-memory API. Hooks can fail or block individual calls.
type fakeGateway struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
	calls  map[string]int

	failCreateUser error
	failListUsers  error
	failUpdateUser error
	failDeleteUser error
	failDeleteTask error
	// failCreateTask is consulted with the 1-based index of each create call.
	failCreateTask func(n int) error
	// block, when set, is received from before a call returns.
	block chan struct{}
}

func newFakeGateway(users ...domain.User) *fakeGateway {
	g := &fakeGateway{users: map[int64]*domain.User{}, calls: map[string]int{}, nextID: 100}
	for _, u := range users {
		c := u.Clone()
		g.users[u.ID] = &c
	}
	return g
}

var _ gateway.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) enter(op string) int {
	g.mu.Lock()
	g.calls[op]++
	n := g.calls[op]
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return n
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	g.enter("list")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failListUsers != nil {
		return nil, g.failListUsers
	}
	out := make([]domain.User, 0, len(g.users))
	for _, u := range g.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (g *fakeGateway) CreateUser(ctx context.Context, u gateway.NewUser) (*domain.User, error) {
	g.enter("create user")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreateUser != nil {
		return nil, g.failCreateUser
	}
	g.nextID++
	created := &domain.User{ID: g.nextID, Name: u.Name, Email: u.Email, Tasks: []domain.Task{}}
	g.users[created.ID] = created
	out := created.Clone()
	return &out, nil
}

func (g *fakeGateway) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	g.enter("update user")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failUpdateUser != nil {
		return nil, g.failUpdateUser
	}
	if _, ok := g.users[u.ID]; !ok {
		return nil, apperrors.NewNotFoundError("user", formatID(u.ID))
	}
	c := u.Clone()
	g.users[u.ID] = &c
	out := c.Clone()
	return &out, nil
}

func (g *fakeGateway) DeleteUser(ctx context.Context, id int64) error {
	g.enter("delete user")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failDeleteUser != nil {
		return g.failDeleteUser
	}
	if _, ok := g.users[id]; !ok {
		return apperrors.NewNotFoundError("user", formatID(id))
	}
	delete(g.users, id)
	return nil
}

func (g *fakeGateway) CreateTask(ctx context.Context, t gateway.NewTask) (*domain.Task, error) {
	n := g.enter("create task")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreateTask != nil {
		if err := g.failCreateTask(n); err != nil {
			return nil, err
		}
	}
	u, ok := g.users[t.UserID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", formatID(t.UserID))
	}
	g.nextID++
	task := domain.Task{ID: g.nextID, Title: t.Title, Description: t.Description, Status: t.Status, UserID: t.UserID}
	u.Tasks = append(u.Tasks, task)
	return &task, nil
}

func (g *fakeGateway) UpdateTask(ctx context.Context, t domain.Task) (*domain.Task, error) {
	g.enter("update task")
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, u := range g.users {
		if i := u.TaskIndex(t.ID); i >= 0 {
			t.UserID = u.ID
			u.Tasks[i] = t
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("task", formatID(t.ID))
}

func (g *fakeGateway) DeleteTask(ctx context.Context, id int64) error {
	g.enter("delete task")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failDeleteTask != nil {
		return g.failDeleteTask
	}
	for _, u := range g.users {
		if i := u.TaskIndex(id); i >= 0 {
			u.Tasks = append(u.Tasks[:i], u.Tasks[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("task", formatID(id))
}

func (g *fakeGateway) user(id int64) (domain.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[id]
	if !ok {
		return domain.User{}, false
	}
	return u.Clone(), true
}
