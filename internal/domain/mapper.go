package domain

import (
	"fmt"

	"uadmin/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		UserID:      domainTask.UserID,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		Status:      domainTask.Status.String(),
	}
}

// FromDatabase converts a database Task to a domain Task. Rows carrying a
// status outside the enumeration are rejected.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) (Task, error) {
	status, err := ParseStatus(dbTask.Status)
	if err != nil {
		return Task{}, fmt.Errorf("task %d: %w", dbTask.ID, err)
	}
	return Task{
		ID:          dbTask.ID,
		UserID:      dbTask.UserID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Status:      status,
	}, nil
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) ([]Task, error) {
	domainTasks := make([]Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		task, err := m.FromDatabase(*dbTask)
		if err != nil {
			return nil, err
		}
		domainTasks = append(domainTasks, task)
	}
	return domainTasks, nil
}

// UserMapper handles conversion between domain and database User models.
type UserMapper struct {
	tasks *TaskMapper
}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{tasks: NewTaskMapper()}
}

// ToDatabase converts a domain User to a database User. Tasks are stored
// separately and are not part of the row.
func (m *UserMapper) ToDatabase(domainUser User) sqlite.User {
	return sqlite.User{
		ID:    domainUser.ID,
		Name:  domainUser.Name,
		Email: domainUser.Email,
	}
}

// FromDatabase converts a database User and its task rows to a domain User.
func (m *UserMapper) FromDatabase(dbUser sqlite.User, dbTasks []*sqlite.Task) (User, error) {
	tasks, err := m.tasks.FromDatabaseSlice(dbTasks)
	if err != nil {
		return User{}, err
	}
	return User{
		ID:    dbUser.ID,
		Name:  dbUser.Name,
		Email: dbUser.Email,
		Tasks: tasks,
	}, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
	User *UserMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
		User: NewUserMapper(),
	}
}
