package groceries

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaadhorim/portal/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrListNotFound = errors.New("grocery list not found")
	ErrItemNotFound = errors.New("grocery item not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddList(ctx context.Context, list *List) (*List, error) {
	if list.Name == "" {
		return nil, errors.New("list name empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO grocery_list (name, event_id, created_at)
			VALUES ($1, $2, $3) RETURNING id;`,
		list.Name, list.EventID, list.CreatedAt,
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

	list.ID = id
	return list, nil
}

// GetList returns the list together with its items.
func (r *Repo) GetList(ctx context.Context, id int) (*List, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, event_id, created_at
			FROM grocery_list WHERE id = $1;`,
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
		return nil, ErrListNotFound
	}

	var list List
	if err := rows.Scan(&list.ID, &list.Name, &list.EventID, &list.CreatedAt); err != nil {
		return nil, err
	}
	rows.Close()

	items, err := r.listItems(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("get list items: %w", err)
	}
	list.Items = items

	return &list, nil
}

// DeleteList removes the list and its items.
func (r *Repo) DeleteList(ctx context.Context, id int) error {
	if _, err := r.db.Exec(
		ctx,
		`DELETE FROM grocery_item WHERE list_id = $1`,
		id,
	); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM grocery_list WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrListNotFound
	}
	return nil
}

// Lists returns all lists without their items, newest first.
func (r *Repo) Lists(ctx context.Context) ([]List, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, event_id, created_at
			FROM grocery_list ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var lists []List
	for rows.Next() {
		var list List
		if err := rows.Scan(&list.ID, &list.Name, &list.EventID, &list.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	return lists, nil
}

func (r *Repo) AddItem(ctx context.Context, item *Item) (*Item, error) {
	if item.Name == "" {
		return nil, errors.New("item name empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO grocery_item (list_id, name, quantity, purchased)
			VALUES ($1, $2, $3, $4) RETURNING id;`,
		item.ListID, item.Name, item.Quantity, item.Purchased,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrListNotFound
		}
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

	item.ID = id
	return item, nil
}

func (r *Repo) UpdateItem(ctx context.Context, item *Item) error {
	if item.Name == "" {
		return errors.New("item name empty")
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE grocery_item SET
			name = $1, quantity = $2, purchased = $3
			WHERE id = $4;`,
		item.Name, item.Quantity, item.Purchased, item.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *Repo) DeleteItem(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM grocery_item WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) listItems(ctx context.Context, listID int) ([]Item, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, list_id, name, quantity, purchased
			FROM grocery_item WHERE list_id = $1 ORDER BY id;`,
		listID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.ListID, &item.Name, &item.Quantity, &item.Purchased,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
