package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/task-tracker/internal/models"
	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTask       = errors.New("invalid task")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService operates on tasks through the storage handle
// passed to every call. It keeps no state between calls.
type TaskService interface {
	// GetTask returns ErrTaskNotFound if the task
	// with the given id doesn't exist.
	GetTask(ctx context.Context, db postgres.DB, id int64) (*models.Task, error)

	// CreateTask inserts a new task with the default status
	// and returns it with the id assigned by the store.
	//
	// It returns ErrInvalidTask if the store rejects a
	// missing field.
	CreateTask(ctx context.Context, db postgres.DB, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies the non-nil fields of params over
	// the stored task and returns the committed row. Nothing
	// is written if no field is set.
	//
	// It returns ErrTaskNotFound if the task doesn't exist
	// or ErrInvalidTaskStatus if the status is unknown.
	UpdateTask(ctx context.Context, db postgres.DB, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask permanently removes the task.
	//
	// It returns ErrTaskNotFound if the task doesn't exist.
	DeleteTask(ctx context.Context, db postgres.DB, id int64) error
}

type CreateTaskParams struct {
	Title       string
	Description string
	Assignee    string
}

type UpdateTaskParams struct {
	ID     int64
	Status *models.Status
}
