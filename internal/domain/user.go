package domain

import "sort"

// User owns an ordered collection of tasks. The password is write-only and
// never part of this type.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Tasks []Task `json:"tasks"`
}

// Clone returns a copy that shares no task storage with u.
func (u User) Clone() User {
	c := u
	c.Tasks = append([]Task(nil), u.Tasks...)
	return c
}

// TaskIndex returns the position of the task with the given ID, or -1.
func (u User) TaskIndex(id int64) int {
	for i, t := range u.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SortUsers orders users by ascending ID in place and returns the slice.
func SortUsers(users []User) []User {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users
}
