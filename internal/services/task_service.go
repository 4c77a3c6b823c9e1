package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-tracker/internal/models"
	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

type taskServiceImpl struct {
	logger zerolog.Logger
}

func NewTaskService(logger zerolog.Logger) TaskService {
	return &taskServiceImpl{
		logger: logger,
	}
}

func (s *taskServiceImpl) GetTask(ctx context.Context, db postgres.DB, id int64) (*models.Task, error) {
	task := &models.Task{ID: id}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       status,
       assignee
FROM task
WHERE id = $1
`
	err := db.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Assignee,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("status", task.Status.String()).
		Msg("selected task by id")

	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, db postgres.DB, params CreateTaskParams) (*models.Task, error) {
	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Assignee:    params.Assignee,
		Status:      models.DefaultStatus,
	}

	const insertTaskQuery = `
INSERT INTO task (title,
                  description,
                  status,
                  assignee)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := db.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.Assignee,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, s.mapPgError(err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("assignee", task.Assignee).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, db postgres.DB, params UpdateTaskParams) (*models.Task, error) {
	if params.Status != nil && !params.Status.IsValid() {
		s.logger.Error().
			Int64("task_id", params.ID).
			Str("status", params.Status.String()).
			Msg("invalid status")
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.GetTask(ctx, db, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Status == nil {
		s.logger.Info().
			Int64("task_id", task.ID).
			Msg("no fields to update")
		return task, nil
	}
	task.Status = *params.Status

	const updateTaskQuery = `
UPDATE task
SET status = $1
WHERE id = $2
RETURNING title, description, status, assignee
`
	updated := &models.Task{ID: task.ID}
	err = db.QueryRow(
		ctx,
		updateTaskQuery,
		task.Status,
		task.ID,
	).Scan(
		&updated.Title,
		&updated.Description,
		&updated.Status,
		&updated.Assignee,
	)
	if err != nil {
		// The row may have been deleted since it was selected.
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info().
				Int64("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, s.mapPgError(err)
	}
	s.logger.Debug().
		Int64("task_id", updated.ID).
		Str("status", updated.Status.String()).
		Msg("updated task")

	s.logger.Info().
		Int64("task_id", updated.ID).
		Msg("updated task")
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, db postgres.DB, id int64) error {
	const deleteTaskQuery = `
DELETE FROM task
WHERE id = $1
`
	tag, err := db.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Info().
			Int64("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}
	s.logger.Debug().
		Int64("task_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted task")

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", ErrInvalidTaskStatus, pgErr.ConstraintName)
	case pgerrcode.NotNullViolation:
		return fmt.Errorf("%w: %s is required", ErrInvalidTask, pgErr.ColumnName)
	default:
		return err
	}
}
