package repository

import (
	"context"
	"fmt"

	"tasks_api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, user_id, title, description, deadline, is_completed, created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Deadline, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the task and fills in the generated columns.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, deadline)
		 VALUES ($1, $2, $3)
		 RETURNING `+taskColumns,
		t.Title, t.Description, t.Deadline,
	)
	created, err := scanTask(row)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	*t = *created
	return nil
}

// List returns every task, newest first.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return res, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// Update overwrites every mutable column and refreshes updated_at.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, deadline = $3, is_completed = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING `+taskColumns,
		t.Title, t.Description, t.Deadline, t.IsCompleted, t.ID,
	)
	updated, err := scanTask(row)
	if err != nil {
		return notFound(err)
	}
	*t = *updated
	return nil
}

// SetCompleted marks the task completed and returns the updated row.
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks SET is_completed = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING `+taskColumns,
		id,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// Delete removes the task if present and reports whether a row was removed.
// Deleting a missing id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
