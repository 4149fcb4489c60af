package store

import "context"

func scanMenuItem(row interface{ Scan(...any) error }) (MenuItem, error) {
	var i MenuItem
	err := row.Scan(&i.ID, &i.Label, &i.Path, &i.OrderIndex)
	return i, err
}

const listMenuItems = `-- name: ListMenuItems :many
SELECT id, label, path, order_index FROM menu_items ORDER BY order_index, id`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, listMenuItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []MenuItem{}
	for rows.Next() {
		i, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMenuItem = `-- name: GetMenuItem :one
SELECT id, label, path, order_index FROM menu_items WHERE id = ?`

func (q *Queries) GetMenuItem(ctx context.Context, id int64) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, getMenuItem, id))
}

const maxMenuOrder = `-- name: MaxMenuOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM menu_items`

func (q *Queries) MaxMenuOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxMenuOrder).Scan(&max)
	return max, err
}

const createMenuItem = `-- name: CreateMenuItem :one
INSERT INTO menu_items (label, path, order_index) VALUES (?, ?, ?)
RETURNING id, label, path, order_index`

type CreateMenuItemParams struct {
	Label      string `json:"label"`
	Path       string `json:"path"`
	OrderIndex int64  `json:"order_index"`
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, createMenuItem, arg.Label, arg.Path, arg.OrderIndex))
}

const updateMenuItem = `-- name: UpdateMenuItem :one
UPDATE menu_items SET label = ?, path = ?, order_index = ? WHERE id = ?
RETURNING id, label, path, order_index`

type UpdateMenuItemParams struct {
	Label      string `json:"label"`
	Path       string `json:"path"`
	OrderIndex int64  `json:"order_index"`
	ID         int64  `json:"id"`
}

func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, updateMenuItem, arg.Label, arg.Path, arg.OrderIndex, arg.ID))
}

const updateMenuItemOrder = `-- name: UpdateMenuItemOrder :execrows
UPDATE menu_items SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateMenuItemOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMenuItemOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMenuItem = `-- name: DeleteMenuItem :execrows
DELETE FROM menu_items WHERE id = ?`

func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMenuItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
