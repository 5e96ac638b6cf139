package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEventNotFound = errors.New("event not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event *Event) (*Event, error) {
	if !event.HasTitle() {
		return nil, errors.New("event title empty")
	}
	if event.StartsAt.IsZero() {
		return nil, errors.New("event start timestamp empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO event (title_he, title_ru, description, location, starts_at, budget_agorot, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		event.TitleHe, event.TitleRu, event.Description,
		event.Location, event.StartsAt, event.BudgetAgorot, event.CreatedAt,
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

	event.ID = id
	return event, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Event, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title_he, title_ru, description, location, starts_at, budget_agorot, created_at
			FROM event WHERE id = $1;`,
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
		return nil, ErrEventNotFound
	}

	var event Event
	if err := rows.Scan(
		&event.ID, &event.TitleHe, &event.TitleRu, &event.Description,
		&event.Location, &event.StartsAt, &event.BudgetAgorot, &event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) Update(ctx context.Context, event *Event) error {
	if !event.HasTitle() {
		return errors.New("event title empty")
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE event SET
			title_he = $1, title_ru = $2, description = $3,
			location = $4, starts_at = $5, budget_agorot = $6
			WHERE id = $7;`,
		event.TitleHe, event.TitleRu, event.Description,
		event.Location, event.StartsAt, event.BudgetAgorot, event.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM event WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, page, size int) (_ []Event, total int, err error) {
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM event;`,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	limit := size
	offset := (page - 1) * size

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title_he, title_ru, description, location, starts_at, budget_agorot, created_at
			FROM event
			ORDER BY starts_at DESC
			LIMIT $1 OFFSET $2;`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Upcoming returns events starting at or after now, soonest first.
func (r *Repo) Upcoming(ctx context.Context, now time.Time) ([]Event, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title_he, title_ru, description, location, starts_at, budget_agorot, created_at
			FROM event
			WHERE starts_at >= $1
			ORDER BY starts_at ASC;`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]Event, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(
			&event.ID, &event.TitleHe, &event.TitleRu, &event.Description,
			&event.Location, &event.StartsAt, &event.BudgetAgorot, &event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
