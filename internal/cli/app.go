package cli

import (
	"context"
	"io"
	"os"
	"strconv"

	"uadmin/internal/config"
	"uadmin/internal/domain"
	apperrors "uadmin/internal/errors"
	"uadmin/internal/gateway"
	"uadmin/internal/notify"
	"uadmin/internal/services"
	"uadmin/internal/state"
	"uadmin/internal/tui"

	"github.com/charmbracelet/lipgloss"
)

// App carries what every command handler needs
type App struct {
	gateway gateway.Gateway
	config  *config.Config
	in      io.Reader
	out     io.Writer
	sink    notify.Sink
	theme   tui.Theme
}

// NewApp creates a CLI application bound to a gateway and configuration.
// It talks to the terminal; tests use NewAppWithIO.
func NewApp(gw gateway.Gateway, cfg *config.Config) *App {
	return NewAppWithIO(gw, cfg, os.Stdin, os.Stdout)
}

// NewAppWithIO creates a CLI application reading answers from in and
// writing everything to out
func NewAppWithIO(gw gateway.Gateway, cfg *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		gateway: gw,
		config:  cfg,
		in:      in,
		out:     out,
		sink:    notify.NewWriterSink(out),
		theme:   tui.NewTheme(lipgloss.NewRenderer(out)),
	}
}

// newBoard returns a board seeded with the configured table view
func (a *App) newBoard() *services.Board {
	return services.NewBoard(a.gateway, a.sink, state.New(a.config.Table.PageSize, a.config.GetFilter()))
}

// findUser loads the list and returns the user with the given ID
func (a *App) findUser(ctx context.Context, board *services.Board, id int64) (domain.User, error) {
	if err := board.Load(ctx); err != nil {
		return domain.User{}, err
	}
	u, ok := board.User(id)
	if !ok {
		return domain.User{}, apperrors.NewNotFoundError("user", strconv.FormatInt(id, 10))
	}
	return u, nil
}

// parseID parses a positive numeric ID argument
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidInputError(kind+" id", arg, "must be a positive number")
	}
	return id, nil
}
