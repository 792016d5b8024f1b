package tui

import (
	"context"
	"strings"
	"time"

	"uadmin/internal/config"
	"uadmin/internal/domain"
	"uadmin/internal/notify"
	"uadmin/internal/services"
	"uadmin/internal/state"
	"uadmin/internal/table"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loadedMsg reports the end of a list fetch.
type loadedMsg struct {
	err error
}

// expireMsg hides the notification with the given ID.
type expireMsg struct {
	id uint64
}

// flowMsg reports the end of a dialog's request. Only the dialog that
// started it handles it.
type flowMsg struct {
	target dialog
	action string
	err    error
}

// dialog is one open modal. update reports whether the dialog closed.
type dialog interface {
	update(ctx context.Context, msg tea.Msg) (closed bool, cmd tea.Cmd)
	view(th Theme) string
}

// Model is the admin screen.
type Model struct {
	ctx    context.Context
	board  *services.Board
	center *notify.Center
	theme  Theme
	keys   keyMap
	form   formKeys
	help   help.Model
	now    func() time.Time

	dialog    dialog
	cursor    int
	loading   bool
	scheduled uint64
}

// New creates the screen. Notifications from board's flows must go to center.
func New(ctx context.Context, board *services.Board, center *notify.Center, keys config.Keymap) Model {
	return Model{
		ctx:     ctx,
		board:   board,
		center:  center,
		theme:   NewTheme(lipgloss.DefaultRenderer()),
		keys:    newKeyMap(keys),
		form:    newFormKeys(keys),
		help:    help.New(),
		now:     time.Now,
		loading: true,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	m.loading = true
	ctx, board := m.ctx, m.board
	return func() tea.Msg {
		return loadedMsg{err: board.Load(ctx)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case loadedMsg:
		m.loading = false
	case expireMsg:
		m.center.Expire(msg.id)
		return m, nil
	case flowMsg:
		if m.dialog != nil && msg.target == m.dialog {
			var closed bool
			closed, cmd = m.dialog.update(m.ctx, msg)
			if closed {
				m.dialog = nil
			}
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.dialog != nil {
			var closed bool
			closed, cmd = m.dialog.update(m.ctx, msg)
			if closed {
				m.dialog = nil
			}
		} else {
			cmd = m.handleKey(msg)
		}
	}
	m.clampCursor()
	expiry := m.scheduleExpiry()
	return m, tea.Batch(cmd, expiry)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.board.State()
	page := s.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(page.Groups)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextPage):
		if s.Page < page.TotalPages {
			m.board.Dispatch(state.PageChanged{Page: s.Page + 1})
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if s.Page > 1 {
			m.board.Dispatch(state.PageChanged{Page: s.Page - 1})
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Filter):
		m.board.Dispatch(state.FilterChanged{Filter: nextFilter(s.Filter)})
	case key.Matches(msg, m.keys.PageSize):
		m.board.Dispatch(state.PageSizeChanged{Size: table.NextPageSize(s.PageSize)})
		m.cursor = 0
	case key.Matches(msg, m.keys.Refresh):
		return m.load()
	case key.Matches(msg, m.keys.Dismiss):
		m.center.Dismiss()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Add):
		m.dialog = newAddDialog(m.board.AddFlow(), m.form)
	case key.Matches(msg, m.keys.Edit):
		if u, ok := m.selected(page); ok {
			m.dialog = newEditDialog(m.board.EditFlow(u), m.form)
		}
	case key.Matches(msg, m.keys.Delete):
		if u, ok := m.selected(page); ok {
			d := newDeleteDialog(m.board.DeleteFlow(), m.form)
			if err := d.flow.Open(u); err == nil {
				m.dialog = d
			}
		}
	case key.Matches(msg, m.keys.View):
		if u, ok := m.selected(page); ok {
			m.dialog = newViewDialog(u, m.form)
		}
	}
	return nil
}

// selected returns the full user under the cursor. The page holds only the
// filtered tasks, so the user is looked up in the state.
func (m *Model) selected(page table.Page) (domain.User, bool) {
	if m.cursor < 0 || m.cursor >= len(page.Groups) {
		return domain.User{}, false
	}
	return m.board.User(page.Groups[m.cursor].User.ID)
}

func (m *Model) clampCursor() {
	n := len(m.board.Page().Groups)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// scheduleExpiry arms a timer for the visible notification once.
func (m *Model) scheduleExpiry() tea.Cmd {
	n, ok := m.center.Current(m.now())
	if !ok || n.ID == m.scheduled {
		return nil
	}
	m.scheduled = n.ID
	return tea.Tick(n.Expires.Sub(m.now()), func(time.Time) tea.Msg {
		return expireMsg{id: n.ID}
	})
}

func nextFilter(current domain.Filter) domain.Filter {
	filters := domain.Filters()
	for i, f := range filters {
		if f == current {
			return filters[(i+1)%len(filters)]
		}
	}
	return domain.FilterAll
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Gestión de Usuarios y Tareas"))
	b.WriteString("\n")

	if m.dialog != nil {
		b.WriteString(m.dialog.view(m.theme))
	} else {
		s := m.board.State()
		page := s.View()
		b.WriteString(RenderPage(m.theme, page, m.cursor))
		b.WriteString("\n")
		b.WriteString(RenderFooter(m.theme, page, s.Filter))
		if m.loading {
			b.WriteString(m.theme.Muted.Render("  cargando…"))
		}
	}
	b.WriteString("\n\n")

	if n, ok := m.center.Current(m.now()); ok {
		style := m.theme.Success
		if n.Severity == notify.Error {
			style = m.theme.Failure
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}
	if m.dialog == nil {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// Run shows the screen until the user quits or ctx is done.
func Run(ctx context.Context, board *services.Board, center *notify.Center, keys config.Keymap) error {
	p := tea.NewProgram(New(ctx, board, center, keys), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
