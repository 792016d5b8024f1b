package services

import (
	"sync"

	"uadmin/internal/domain"
)

// TaskView is a task with the tone its status indicator is drawn in.
type TaskView struct {
	domain.Task
	Tone domain.Tone
}

// View is the read-only detail of one user.
type View struct {
	ID    int64
	Name  string
	Email string
	Tasks []TaskView
}

// NewView builds the detail of user.
func NewView(user domain.User) View {
	v := View{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Tasks: make([]TaskView, 0, len(user.Tasks)),
	}
	for _, t := range user.Tasks {
		v.Tasks = append(v.Tasks, TaskView{Task: t, Tone: domain.StatusTone(t.Status)})
	}
	return v
}

// ViewFlow shows one user. It never mutates anything.
type ViewFlow struct {
	mu      sync.Mutex
	current *View
}

// Open shows user and returns its detail.
func (f *ViewFlow) Open(user domain.User) View {
	v := NewView(user)
	f.mu.Lock()
	f.current = &v
	f.mu.Unlock()
	return v
}

// Current returns the open detail.
func (f *ViewFlow) Current() (View, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return View{}, false
	}
	return *f.current, true
}

// Close hides the detail.
func (f *ViewFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
}
