package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const TaskTable = "task"

// Status is stored as bounded text rather than a native
// enum type. The longest value is "in_progress".
const createTaskTableQuery = `
CREATE TABLE task (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    status      VARCHAR(11) NOT NULL DEFAULT 'to_do'
                CHECK (status IN ('to_do', 'in_progress', 'completed')),
    assignee    TEXT NOT NULL
)
`

const selectTableExistsQuery = `
SELECT EXISTS (SELECT 1
               FROM information_schema.tables
               WHERE table_schema = current_schema() AND
                     table_name = $1)
`

// EnsureSchema creates the task table when it is missing.
// An existing table is never altered or dropped.
func EnsureSchema(ctx context.Context, db DB, logger zerolog.Logger) error {
	var exists bool
	err := db.QueryRow(
		ctx,
		selectTableExistsQuery,
		TaskTable,
	).Scan(&exists)
	if err != nil {
		logger.Error().
			Err(err).
			Str("table", TaskTable).
			Msg("failed to check table existence")
		return err
	}

	if exists {
		logger.Info().
			Str("table", TaskTable).
			Msg("table already exists")
		return nil
	}

	_, err = db.Exec(ctx, createTaskTableQuery)
	if err != nil {
		// Another instance may have won the race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.DuplicateTable {
			logger.Info().
				Str("table", TaskTable).
				Msg("table already exists")
			return nil
		}

		logger.Error().
			Err(err).
			Str("table", TaskTable).
			Msg("failed to create table")
		return err
	}

	logger.Info().
		Str("table", TaskTable).
		Msg("created table")
	return nil
}
