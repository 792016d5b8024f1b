// Package table lays out the paginated user/task grid. Each visible user is
// a row group whose identity cells span the user's visible task rows.
package table

import (
	"strconv"
	"strings"

	"uadmin/internal/domain"
)

// DefaultPageSize is the page size the grid opens with.
const DefaultPageSize = 3

var pageSizes = [...]int{3, 5, 10}

// PageSizes returns the selectable page sizes in menu order.
func PageSizes() []int {
	return append([]int(nil), pageSizes[:]...)
}

// IsPageSize reports whether n is one of the selectable page sizes.
func IsPageSize(n int) bool {
	for _, s := range pageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// PageSizesLabel renders the selectable sizes as "3, 5, 10".
func PageSizesLabel() string {
	parts := make([]string, len(pageSizes))
	for i, s := range pageSizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// NextPageSize cycles through the selectable sizes.
func NextPageSize(n int) int {
	for i, s := range pageSizes {
		if s == n {
			return pageSizes[(i+1)%len(pageSizes)]
		}
	}
	return DefaultPageSize
}

// RowGroup is one user and the tasks shown under it.
type RowGroup struct {
	User  domain.User
	Tasks []domain.Task
	// Span is the number of table rows the identity cells cover.
	Span int
}

// Row is one rendered table line. The identity row opens each group and
// carries no task; every task follows on its own row.
type Row struct {
	Group    *RowGroup
	Task     *domain.Task
	Identity bool
}

// Page is the visible slice of the grid.
type Page struct {
	Groups       []RowGroup
	Number       int
	Size         int
	TotalPages   int
	VisibleUsers int
}

// Render computes the rows for one page. users must already be sorted.
// A page past the end yields no groups. Non-positive pages are treated as
// page 1 and an unknown page size as DefaultPageSize.
func Render(users []domain.User, filter domain.Filter, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	visible := make([]domain.User, 0, len(users))
	for _, u := range users {
		if filter.MatchesUser(u) {
			visible = append(visible, u)
		}
	}

	p := Page{
		Number:       page,
		Size:         pageSize,
		VisibleUsers: len(visible),
		TotalPages:   (len(visible) + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= len(visible) {
		return p
	}
	end := start + pageSize
	if end > len(visible) {
		end = len(visible)
	}

	p.Groups = make([]RowGroup, 0, end-start)
	for _, u := range visible[start:end] {
		tasks := visibleTasks(u.Tasks, filter)
		p.Groups = append(p.Groups, RowGroup{
			User:  u,
			Tasks: tasks,
			Span:  len(tasks) + 1,
		})
	}
	return p
}

// visibleTasks filters tasks independently of the user-level check, so a
// visible user may end up with no task rows.
func visibleTasks(tasks []domain.Task, filter domain.Filter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Rows flattens the groups. Each group contributes exactly Span rows.
func (p Page) Rows() []Row {
	var rows []Row
	for i := range p.Groups {
		g := &p.Groups[i]
		rows = append(rows, Row{Group: g, Identity: true})
		for j := range g.Tasks {
			rows = append(rows, Row{Group: g, Task: &g.Tasks[j]})
		}
	}
	return rows
}

// IsEmpty reports whether the page has nothing to show.
func (p Page) IsEmpty() bool {
	return len(p.Groups) == 0
}
