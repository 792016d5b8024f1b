package domain

import "strings"

// FilterAllLabel is the label of the sentinel filter that shows everything.
const FilterAllLabel = "Todos"

// Filter selects which tasks, and through them which users, are visible.
// The zero value is not meaningful; use FilterAll or FilterBy.
type Filter struct {
	all    bool
	status Status
}

// FilterAll shows every user and every task.
var FilterAll = Filter{all: true}

// FilterBy restricts the view to tasks with the given status.
func FilterBy(s Status) Filter {
	return Filter{status: s}
}

// ParseFilter accepts "Todos", "all", the empty string or a status wire value.
func ParseFilter(v string) (Filter, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" || trimmed == FilterAllLabel || strings.EqualFold(trimmed, "all") {
		return FilterAll, nil
	}
	s, err := ParseStatus(trimmed)
	if err != nil {
		return Filter{}, err
	}
	return FilterBy(s), nil
}

// Filters returns the selectable filters in menu order.
func Filters() []Filter {
	out := []Filter{FilterAll}
	for _, s := range Statuses() {
		out = append(out, FilterBy(s))
	}
	return out
}

// IsAll reports whether f is the sentinel "all" filter.
func (f Filter) IsAll() bool {
	return f.all
}

// Status returns the filtered status and false for the "all" filter.
func (f Filter) Status() (Status, bool) {
	if f.all {
		return 0, false
	}
	return f.status, true
}

// Matches reports whether a task passes the filter.
func (f Filter) Matches(t Task) bool {
	return f.all || t.Status == f.status
}

// MatchesUser reports whether the user has at least one task passing the filter.
func (f Filter) MatchesUser(u User) bool {
	if f.all {
		return true
	}
	for _, t := range u.Tasks {
		if f.Matches(t) {
			return true
		}
	}
	return false
}

func (f Filter) String() string {
	if f.all {
		return FilterAllLabel
	}
	return f.status.String()
}
