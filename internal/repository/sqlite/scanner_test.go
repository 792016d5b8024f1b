package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	return assign(dest, ts.data)
}

func assign(dest []interface{}, data []interface{}) error {
	if len(dest) != len(data) {
		return errors.New("mismatch in number of destinations")
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = data[i].(int64)
		case *string:
			*v = data[i].(string)
		}
	}
	return nil
}

func TestScanUser(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *User
		expectError bool
	}{
		{
			name: "Valid user",
			scanner: &TestScanner{
				data: []interface{}{int64(7), "Ana", "ana@example.com", "abc123"},
			},
			expected: &User{ID: 7, Name: "Ana", Email: "ana@example.com", PasswordHash: "abc123"},
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
		{
			name:        "Column count mismatch",
			scanner:     &TestScanner{data: []interface{}{int64(7), "Ana"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanUser(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Task
		expectError bool
	}{
		{
			name: "Valid task",
			scanner: &TestScanner{
				data: []interface{}{int64(1), int64(3), "Comprar", "leche", "Pendiente"},
			},
			expected: &Task{ID: 1, UserID: 3, Title: "Comprar", Description: "leche", Status: "Pendiente"},
		},
		{
			name: "Empty description",
			scanner: &TestScanner{
				data: []interface{}{int64(2), int64(3), "Leer", "", "Completada"},
			},
			expected: &Task{ID: 2, UserID: 3, Title: "Leer", Status: "Completada"},
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows       [][]interface{}
	currentRow int
	err        error
}

func (tr *TestRows) Next() bool {
	if tr.err != nil {
		return false
	}
	if tr.currentRow >= len(tr.rows) {
		return false
	}
	tr.currentRow++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	if tr.currentRow == 0 || tr.currentRow > len(tr.rows) {
		return errors.New("no current row")
	}
	return assign(dest, tr.rows[tr.currentRow-1])
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanUsers(t *testing.T) {
	rows := &TestRows{
		rows: [][]interface{}{
			{int64(1), "Ana", "ana@example.com", ""},
			{int64(2), "Luis", "luis@example.com", ""},
		},
	}

	result, err := ScanUsers(rows)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "Luis", result[1].Name)
}

func TestScanTasks(t *testing.T) {
	tests := []struct {
		name        string
		rows        *TestRows
		expected    []*Task
		expectError bool
	}{
		{
			name: "Multiple tasks",
			rows: &TestRows{
				rows: [][]interface{}{
					{int64(1), int64(9), "Task 1", "d1", "Pendiente"},
					{int64(2), int64(9), "Task 2", "d2", "En Progreso"},
				},
			},
			expected: []*Task{
				{ID: 1, UserID: 9, Title: "Task 1", Description: "d1", Status: "Pendiente"},
				{ID: 2, UserID: 9, Title: "Task 2", Description: "d2", Status: "En Progreso"},
			},
		},
		{
			name:     "Empty result set",
			rows:     &TestRows{rows: [][]interface{}{}},
			expected: nil,
		},
		{
			name: "Rows error",
			rows: &TestRows{
				rows: [][]interface{}{{int64(1), int64(9), "Task 1", "", "Pendiente"}},
				err:  sql.ErrConnDone,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTasks(tt.rows)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
