// Package state holds the admin screen's application state and the reducer
// that is its only writer.
package state

import (
	"uadmin/internal/domain"
	"uadmin/internal/table"
)

// State is the complete view state. Users is always sorted by ascending ID.
type State struct {
	Users    []domain.User
	Page     int
	PageSize int
	Filter   domain.Filter
}

// New returns the initial state for the given page size and filter.
func New(pageSize int, filter domain.Filter) State {
	if !table.IsPageSize(pageSize) {
		pageSize = table.DefaultPageSize
	}
	return State{Page: 1, PageSize: pageSize, Filter: filter}
}

// Action describes one state transition.
type Action interface {
	apply(State) State
}

// Loaded replaces the user list with a fresh fetch.
type Loaded struct {
	Users []domain.User
}

// UserSaved inserts or replaces a user by ID.
type UserSaved struct {
	User domain.User
}

// UserRemoved drops the user with the given ID.
type UserRemoved struct {
	ID int64
}

// PageChanged moves to another page. Pages below 1 clamp to 1.
type PageChanged struct {
	Page int
}

// PageSizeChanged switches the page size and returns to the first page.
type PageSizeChanged struct {
	Size int
}

// FilterChanged switches the status filter. The current page is kept.
type FilterChanged struct {
	Filter domain.Filter
}

// Reduce returns the state that results from applying a to s. s is not
// modified.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a Loaded) apply(s State) State {
	users := make([]domain.User, len(a.Users))
	for i, u := range a.Users {
		users[i] = u.Clone()
	}
	s.Users = domain.SortUsers(users)
	return s
}

func (a UserSaved) apply(s State) State {
	users := make([]domain.User, 0, len(s.Users)+1)
	replaced := false
	for _, u := range s.Users {
		if u.ID == a.User.ID {
			users = append(users, a.User.Clone())
			replaced = true
			continue
		}
		users = append(users, u)
	}
	if !replaced {
		users = append(users, a.User.Clone())
	}
	s.Users = domain.SortUsers(users)
	return s
}

func (a UserRemoved) apply(s State) State {
	users := make([]domain.User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.ID != a.ID {
			users = append(users, u)
		}
	}
	s.Users = users
	return s
}

func (a PageChanged) apply(s State) State {
	s.Page = a.Page
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

func (a PageSizeChanged) apply(s State) State {
	if table.IsPageSize(a.Size) {
		s.PageSize = a.Size
	}
	s.Page = 1
	return s
}

func (a FilterChanged) apply(s State) State {
	s.Filter = a.Filter
	return s
}

// View renders the current page of s.
func (s State) View() table.Page {
	return table.Render(s.Users, s.Filter, s.Page, s.PageSize)
}

// User returns the user with the given ID.
func (s State) User(id int64) (domain.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}
