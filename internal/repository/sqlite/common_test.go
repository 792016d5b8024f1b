package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "uadmin/internal/errors"
)

type stubResult struct {
	rows int64
	err  error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestHandleConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		typ  apperrors.ErrorType
		msg  string
	}{
		{
			name: "missing owner",
			err:  errors.New("constraint failed: FOREIGN KEY constraint failed (787)"),
			typ:  apperrors.ErrorTypeNotFound,
			msg:  "user not found: 9",
		},
		{
			name: "duplicate",
			err:  errors.New("UNIQUE constraint failed: users.email"),
			typ:  apperrors.ErrorTypeConflict,
			msg:  "user conflict: duplicate key",
		},
		{
			name: "anything else",
			err:  errors.New("disk I/O error"),
			typ:  apperrors.ErrorTypeDatabase,
			msg:  "database operation failed: insert task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleConstraintError("insert task", tt.err, "user", "9")
			appErr, ok := apperrors.AsAppError(err)
			if assert.True(t, ok) {
				assert.Equal(t, tt.typ, appErr.Type)
				assert.Equal(t, tt.msg, appErr.Message)
			}
		})
	}
}

func TestHandleNoRowsError(t *testing.T) {
	err := HandleNoRowsError(sql.ErrNoRows, "task", "5")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "task not found: 5")

	other := errors.New("driver closed")
	assert.Same(t, other, HandleNoRowsError(other, "task", "5"))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name   string
		result sql.Result
		typ    apperrors.ErrorType
		ok     bool
	}{
		{name: "one row", result: stubResult{rows: 1}, ok: true},
		{name: "no row", result: stubResult{}, typ: apperrors.ErrorTypeNotFound},
		{name: "driver error", result: stubResult{err: errors.New("closed")}, typ: apperrors.ErrorTypeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "user", "3")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsErrorType(err, tt.typ), "got %v", err)
		})
	}
}
