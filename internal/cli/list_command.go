package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/state"
	"uadmin/internal/table"
	"uadmin/internal/tui"
)

// Output formats of the list and view commands
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ListOptions selects the page to print. Zero values fall back to the
// configuration.
type ListOptions struct {
	Filter   string
	Page     int
	PageSize int
	Format   string
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// listedUser is the JSON shape of one row group
type listedUser struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Tasks []domain.Task `json:"tasks"`
}

type listedPage struct {
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
	Filter     string       `json:"filter"`
	Users      []listedUser `json:"users"`
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()

	format := c.opts.Format
	if format == "" {
		format = c.app.config.Commands.ListDefaultFormat
	}
	if format != FormatTable && format != FormatJSON {
		return eh.HandleSimple(apperrors.NewInvalidInputError("format", format, "must be table or json"))
	}

	board := c.app.newBoard()
	if c.opts.Filter != "" {
		f, err := domain.ParseFilter(c.opts.Filter)
		if err != nil {
			return eh.HandleSimple(apperrors.NewInvalidInputError("filter", c.opts.Filter, err.Error()))
		}
		board.Dispatch(state.FilterChanged{Filter: f})
	}
	if c.opts.PageSize != 0 {
		if !table.IsPageSize(c.opts.PageSize) {
			return eh.HandleSimple(apperrors.NewInvalidInputError("page size", c.opts.PageSize, "must be one of "+table.PageSizesLabel()))
		}
		board.Dispatch(state.PageSizeChanged{Size: c.opts.PageSize})
	}

	if err := board.Load(ctx); err != nil {
		return eh.Handle("list users", err)
	}
	if c.opts.Page > 1 {
		board.Dispatch(state.PageChanged{Page: c.opts.Page})
	}

	s := board.State()
	page := s.View()
	if format == FormatJSON {
		return c.printJSON(page, s.Filter)
	}

	fmt.Fprintln(c.app.out, tui.RenderPage(c.app.theme, page, -1))
	fmt.Fprintln(c.app.out, tui.RenderFooter(c.app.theme, page, s.Filter))
	return nil
}

func (c *ListCommand) printJSON(page table.Page, filter domain.Filter) error {
	out := listedPage{
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: page.TotalPages,
		Filter:     filter.String(),
		Users:      make([]listedUser, 0, len(page.Groups)),
	}
	for _, g := range page.Groups {
		out.Users = append(out.Users, listedUser{
			ID:    g.User.ID,
			Name:  g.User.Name,
			Email: g.User.Email,
			Tasks: append([]domain.Task{}, g.Tasks...),
		})
	}
	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
