package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaadhorim/portal/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, sub *Subscription) error {
	if sub.Endpoint == "" {
		return errors.New("subscription endpoint empty")
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO push_subscription (id, endpoint, p256dh, auth, created_at)
			VALUES ($1, $2, $3, $4, $5);`,
		sub.ID, sub.Endpoint, sub.P256dh, sub.Auth, sub.CreatedAt,
	); err != nil {
		// same browser subscribing again is fine
		if pkg.IsUniqueViolationError(err) {
			return nil
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM push_subscription WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// List returns all subscriptions, oldest first.
func (r *Repo) List(ctx context.Context) ([]Subscription, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, endpoint, p256dh, auth, created_at
			FROM push_subscription ORDER BY created_at;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(
			&sub.ID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, nil
}
