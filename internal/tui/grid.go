package tui

import (
	"fmt"
	"strconv"

	"uadmin/internal/table"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var gridHeaders = []string{"ID", "Nombre", "Email", "Título", "Descripción", "Estado"}

// RenderPage draws the row groups of p. The group at index cursor is
// highlighted; pass -1 for none.
func RenderPage(th Theme, p table.Page, cursor int) string {
	if p.IsEmpty() {
		return th.Muted.Render("No hay usuarios para mostrar.")
	}

	rows := p.Rows()
	highlight := make([]bool, len(rows))
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.Border).
		Headers(gridHeaders...)

	group := -1
	for i, row := range rows {
		if row.Identity {
			group++
			u := row.Group.User
			t.Row(strconv.FormatInt(u.ID, 10), u.Name, u.Email, "", "", "")
		} else {
			t.Row("", "", "", row.Task.Title, row.Task.Description, th.Chip(row.Task.Status))
		}
		highlight[i] = group == cursor
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == ltable.HeaderRow:
			return th.Header
		case row >= 0 && row < len(highlight) && highlight[row]:
			return th.Selected
		default:
			return th.Cell
		}
	})
	return t.String()
}

// RenderFooter summarises pagination and filtering.
func RenderFooter(th Theme, p table.Page, filter fmt.Stringer) string {
	total := p.TotalPages
	if total == 0 {
		total = 1
	}
	return th.Muted.Render(fmt.Sprintf("Página %d de %d · %d usuarios · Filtro: %s · Por página: %d",
		p.Number, total, p.VisibleUsers, filter, p.Size))
}
