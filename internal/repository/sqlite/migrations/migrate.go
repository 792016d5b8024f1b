package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"uadmin/internal/logging"
)

//go:embed *.sql
var scripts embed.FS

const schemaTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Migration is one numbered schema step with its revert script.
type Migration struct {
	Version int
	Up      string
	Down    string
}

// RunMigrations brings the users/tasks schema up to the latest version.
// Each step runs in its own transaction together with its bookkeeping row.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	all, applied, err := state(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		logging.Debugf("migrations: applying %06d", m.Version)
		err := inTx(ctx, db, m.Up, "INSERT INTO schema_migrations (version) VALUES (?)", m.Version)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// RollbackLast reverts the newest applied step. Nothing applied means nothing to do.
func RollbackLast(ctx context.Context, db *sql.DB) error {
	all, applied, err := state(ctx, db)
	if err != nil {
		return err
	}

	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if !applied[m.Version] {
			continue
		}
		logging.Debugf("migrations: reverting %06d", m.Version)
		err := inTx(ctx, db, m.Down, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
		if err != nil {
			return fmt.Errorf("failed to revert migration %d: %w", m.Version, err)
		}
		return nil
	}
	return nil
}

func state(ctx context.Context, db *sql.DB) ([]Migration, map[int]bool, error) {
	all, err := Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	return all, applied, nil
}

func inTx(ctx context.Context, db *sql.DB, script, record string, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the embedded *.up.sql scripts paired with their *.down.sql
// counterpart, oldest first. Files without a numeric prefix are ignored.
func Load() ([]Migration, error) {
	entries, err := scripts.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var out []Migration
	for _, entry := range entries {
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok {
			continue
		}
		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		up, err := scripts.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		down, err := scripts.ReadFile(base + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}
		out = append(out, Migration{Version: version, Up: string(up), Down: string(down)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// AppliedVersions lists the versions recorded in schema_migrations.
func AppliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func extractVersion(filename string) int {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return v
}
