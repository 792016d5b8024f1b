package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uadmin/internal/repository/sqlite"
	"uadmin/internal/server"
)

// ServeCommand runs the development API server
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the API until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	cfg := c.app.config

	dbPath := cfg.GetDatabasePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return eh.Handle("open database", err)
	}
	defer repo.Close()

	fmt.Fprintf(c.app.out, "Serving the users API on %s (database %s)\n", cfg.Server.Addr, dbPath)
	return server.New(repo).ListenAndServe(ctx, cfg.Server.Addr)
}
