package protocols

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProtocolNotFound = errors.New("protocol not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, protocol *Protocol) (*Protocol, error) {
	if protocol.Title == "" {
		return nil, errors.New("protocol title empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO protocol (title, body, meeting_date, created_at)
			VALUES ($1, $2, $3, $4) RETURNING id;`,
		protocol.Title, protocol.Body, protocol.MeetingDate, protocol.CreatedAt,
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

	protocol.ID = id
	return protocol, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Protocol, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, body, meeting_date, created_at
			FROM protocol WHERE id = $1;`,
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
		return nil, ErrProtocolNotFound
	}

	var protocol Protocol
	if err := rows.Scan(
		&protocol.ID, &protocol.Title, &protocol.Body,
		&protocol.MeetingDate, &protocol.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &protocol, nil
}

func (r *Repo) Update(ctx context.Context, protocol *Protocol) error {
	if protocol.Title == "" {
		return errors.New("protocol title empty")
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE protocol SET
			title = $1, body = $2, meeting_date = $3
			WHERE id = $4;`,
		protocol.Title, protocol.Body, protocol.MeetingDate, protocol.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProtocolNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM protocol WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProtocolNotFound
	}
	return nil
}

// List returns all protocols, most recent meeting first.
func (r *Repo) List(ctx context.Context) ([]Protocol, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, body, meeting_date, created_at
			FROM protocol ORDER BY meeting_date DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var protocols []Protocol
	for rows.Next() {
		var protocol Protocol
		if err := rows.Scan(
			&protocol.ID, &protocol.Title, &protocol.Body,
			&protocol.MeetingDate, &protocol.CreatedAt,
		); err != nil {
			return nil, err
		}
		protocols = append(protocols, protocol)
	}

	return protocols, nil
}
