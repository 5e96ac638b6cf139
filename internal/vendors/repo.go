package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrVendorNotFound = errors.New("vendor not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, vendor *Vendor) (*Vendor, error) {
	if vendor.Name == "" {
		return nil, errors.New("vendor name empty")
	}
	if !vendor.RatingIsValid() {
		return nil, fmt.Errorf("invalid vendor rating: %d", vendor.Rating)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO vendor (name, category, phone, notes, rating, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		vendor.Name, vendor.Category, vendor.Phone, vendor.Notes, vendor.Rating, vendor.CreatedAt,
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

	vendor.ID = id
	return vendor, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*Vendor, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, phone, notes, rating, created_at
			FROM vendor WHERE id = $1;`,
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
		return nil, ErrVendorNotFound
	}

	var vendor Vendor
	if err := rows.Scan(
		&vendor.ID, &vendor.Name, &vendor.Category,
		&vendor.Phone, &vendor.Notes, &vendor.Rating, &vendor.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *Repo) Update(ctx context.Context, vendor *Vendor) error {
	if vendor.Name == "" {
		return errors.New("vendor name empty")
	}
	if !vendor.RatingIsValid() {
		return fmt.Errorf("invalid vendor rating: %d", vendor.Rating)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE vendor SET
			name = $1, category = $2, phone = $3, notes = $4, rating = $5
			WHERE id = $6;`,
		vendor.Name, vendor.Category, vendor.Phone, vendor.Notes, vendor.Rating, vendor.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrVendorNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM vendor WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVendorNotFound
	}
	return nil
}

// List returns all vendors, ordered by name.
func (r *Repo) List(ctx context.Context) ([]Vendor, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, phone, notes, rating, created_at
			FROM vendor ORDER BY name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var vendors []Vendor
	for rows.Next() {
		var vendor Vendor
		if err := rows.Scan(
			&vendor.ID, &vendor.Name, &vendor.Category,
			&vendor.Phone, &vendor.Notes, &vendor.Rating, &vendor.CreatedAt,
		); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}
