package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, feedback *Feedback) (*Feedback, error) {
	if feedback.Message == "" {
		return nil, errors.New("feedback message empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO feedback (subject, message, language, created_at)
			VALUES ($1, $2, $3, $4) RETURNING id;`,
		feedback.Subject, feedback.Message, feedback.Language, feedback.CreatedAt,
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

	feedback.ID = id
	return feedback, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM feedback WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

// List returns all feedback entries, newest first.
func (r *Repo) List(ctx context.Context) ([]Feedback, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, subject, message, language, created_at
			FROM feedback ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var entries []Feedback
	for rows.Next() {
		var entry Feedback
		if err := rows.Scan(
			&entry.ID, &entry.Subject, &entry.Message,
			&entry.Language, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
