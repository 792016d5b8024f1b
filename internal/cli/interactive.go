package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uadmin/internal/logging"
	"uadmin/internal/notify"
	"uadmin/internal/services"
	"uadmin/internal/state"
	"uadmin/internal/tui"
)

// InteractiveCommand opens the full-screen admin table
type InteractiveCommand struct {
	app *App
}

// NewInteractiveCommand creates a new interactive command handler
func NewInteractiveCommand(app *App) *InteractiveCommand {
	return &InteractiveCommand{app: app}
}

// Execute runs the screen until the user quits. Log output is moved to the
// configured log file so it cannot corrupt the screen.
func (c *InteractiveCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config

	if cfg.Application.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Application.LogFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Application.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(f)
		defer logging.SetOutput(nil)
	}

	center := notify.NewCenter(
		notify.WithDuration(cfg.Notify.Duration),
		notify.OnNotify(logNotification),
	)
	board := services.NewBoard(c.app.gateway, center, state.New(cfg.Table.PageSize, cfg.GetFilter()))
	return tui.Run(ctx, board, center, cfg.Keys)
}

// logNotification keeps a trace of what the screen showed in the debug log.
func logNotification(n notify.Notification) {
	logging.Debugln("notify:", n.Severity, n.Message)
}
