package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = errors.New("task not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, task *Task) (*Task, error) {
	if task.Title == "" {
		return nil, errors.New("task title empty")
	}
	if !task.Status.IsValid() {
		return nil, fmt.Errorf("invalid task status: %s", task.Status)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO task (title, details, assignee, status, due_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		task.Title, task.Details, task.Assignee, task.Status, task.DueAt, task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	task.ID = id
	return task, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Task, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, details, assignee, status, due_at, created_at
			FROM task WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrTaskNotFound
	}

	var task Task
	if err := rows.Scan(
		&task.ID, &task.Title, &task.Details, &task.Assignee,
		&task.Status, &task.DueAt, &task.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *Repo) Update(ctx context.Context, task *Task) error {
	if task.Title == "" {
		return errors.New("task title empty")
	}
	if !task.Status.IsValid() {
		return fmt.Errorf("invalid task status: %s", task.Status)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE task SET
			title = $1, details = $2, assignee = $3, status = $4, due_at = $5
			WHERE id = $6;`,
		task.Title, task.Details, task.Assignee, task.Status, task.DueAt, task.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM task WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// List returns all tasks, optionally filtered by status, newest first.
func (r *Repo) List(ctx context.Context, status *Status) ([]Task, error) {
	query := `SELECT id, title, details, assignee, status, due_at, created_at FROM task`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var tasks []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Details, &task.Assignee,
			&task.Status, &task.DueAt, &task.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
