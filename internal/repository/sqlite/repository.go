package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"uadmin/internal/errors"
	"uadmin/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Create operations
	CreateUser(ctx context.Context, user *User) error
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	ListTasksByUser(ctx context.Context, userID int64) ([]*Task, error)

	// Update operations
	UpdateUser(ctx context.Context, user *User) error
	UpdateTask(ctx context.Context, task *Task) error
	ReplaceUserTasks(ctx context.Context, userID int64, tasks []*Task) error

	// Delete operations
	DeleteUser(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance. The special path ":memory:"
// opens a private in-memory database.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", DSN(dbPath))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// a single connection keeps in-memory databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// DSN builds the modernc connection string for path with foreign keys
// enforced and a busy timeout.
func DSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	u := url.URL{Scheme: "file", Opaque: ":memory:"}
	if path != ":memory:" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		u = url.URL{Scheme: "file", Path: path}
	}
	q := url.Values{}
	if path != ":memory:" {
		q.Set("mode", "rwc")
	}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const userColumns = `id, name, email, password_hash`

const taskColumns = `id, user_id, title, description, status`

// CreateUser creates a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// ListUsers retrieves all users ordered by ID
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users")
}

// UpdateUser updates a user's name and email. The stored password is kept.
func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *User) error {
	query := `UPDATE users SET name = ?, email = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", fmt.Sprintf("%d", user.ID), user.Name, user.Email, user.ID)
}

// DeleteUser deletes a user by ID. Its tasks go with it.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", fmt.Sprintf("%d", id), id)
}

// CreateTask creates a new task for an existing user
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	id, err := insertTask(ctx, r.db, task)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

func insertTask(ctx context.Context, db Execer, task *Task) (int64, error) {
	query := `
	INSERT INTO tasks (user_id, title, description, status)
	VALUES (?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query, task.UserID, task.Title, task.Description, task.Status)
	if err != nil {
		return 0, HandleConstraintError("insert task", err, "user", fmt.Sprintf("%d", task.UserID))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}
	return id, nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves every task ordered by owner then ID
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY user_id ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// ListTasksByUser retrieves the tasks owned by a user ordered by ID
func (r *SQLiteRepository) ListTasksByUser(ctx context.Context, userID int64) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID)
}

// UpdateTask updates an existing task. Ownership does not change.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, status = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID), task.Title, task.Description, task.Status, task.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// ReplaceUserTasks makes tasks the complete task set of the user in one
// transaction. Tasks with an ID must already belong to the user and are
// updated, tasks without one are inserted, and any other task of the user is
// deleted. Assigned IDs are written back.
func (r *SQLiteRepository) ReplaceUserTasks(ctx context.Context, userID int64, tasks []*Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	keep := make([]interface{}, 0, len(tasks)+1)
	keep = append(keep, userID)
	for _, task := range tasks {
		task.UserID = userID
		if task.ID == 0 {
			id, err := insertTask(ctx, tx, task)
			if err != nil {
				return err
			}
			task.ID = id
		} else {
			query := `UPDATE tasks SET title = ?, description = ?, status = ? WHERE id = ? AND user_id = ?`
			if err := ExecuteWithRowsAffected(ctx, tx, query, "task", fmt.Sprintf("%d", task.ID),
				task.Title, task.Description, task.Status, task.ID, userID); err != nil {
				return err
			}
		}
		keep = append(keep, task.ID)
	}

	query := `DELETE FROM tasks WHERE user_id = ?`
	if len(keep) > 1 {
		query += ` AND id NOT IN (?` + strings.Repeat(", ?", len(keep)-2) + `)`
	}
	if _, err := tx.ExecContext(ctx, query, keep...); err != nil {
		return HandleDatabaseError("delete stale tasks", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
