package sqlite

// User is a row of the users table.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// Task is a row of the tasks table. Status holds the wire label.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
}
