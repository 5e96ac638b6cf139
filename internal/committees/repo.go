package committees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMemberNotFound = errors.New("committee member not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, member *Member) (*Member, error) {
	if member.Name == "" {
		return nil, errors.New("member name empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO committee_member (name, role_title, phone, email, building, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		member.Name, member.RoleTitle, member.Phone, member.Email, member.Building, member.CreatedAt,
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

	member.ID = id
	return member, nil
}

func (r *Repo) Update(ctx context.Context, member *Member) error {
	if member.Name == "" {
		return errors.New("member name empty")
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE committee_member SET
			name = $1, role_title = $2, phone = $3, email = $4, building = $5
			WHERE id = $6;`,
		member.Name, member.RoleTitle, member.Phone, member.Email, member.Building, member.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM committee_member WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// List returns all members, ordered by name.
func (r *Repo) List(ctx context.Context) ([]Member, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, role_title, phone, email, building, created_at
			FROM committee_member ORDER BY name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var members []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(
			&member.ID, &member.Name, &member.RoleTitle,
			&member.Phone, &member.Email, &member.Building, &member.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}
