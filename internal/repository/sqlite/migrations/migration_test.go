package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestLoad_OrderedWithDownScripts(t *testing.T) {
	migrations, err := Load()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, 2, migrations[1].Version)
	for _, m := range migrations {
		assert.NotEmpty(t, m.Up)
		assert.NotEmpty(t, m.Down)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "tasks"))

	applied, err := AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true}, applied)
}

func TestTasksTable_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, RunMigrations(ctx, db))

	_, err := db.Exec(`INSERT INTO users (name, email) VALUES ('Ana', 'ana@example.com')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (user_id, title, status) VALUES (1, 'a', 'Archivada')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO tasks (user_id, title) VALUES (1, 'b')`)
	require.NoError(t, err)
	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM tasks WHERE title = 'b'`).Scan(&status))
	assert.Equal(t, "Pendiente", status)
}

func TestRollbackLast(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, RunMigrations(ctx, db))

	require.NoError(t, RollbackLast(ctx, db))
	assert.False(t, tableExists(t, db, "tasks"))
	assert.True(t, tableExists(t, db, "users"))

	require.NoError(t, RollbackLast(ctx, db))
	assert.False(t, tableExists(t, db, "users"))

	require.NoError(t, RollbackLast(ctx, db))

	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "tasks"))
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_users.up.sql"))
	assert.Equal(t, 12, extractVersion("000012_x.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}
