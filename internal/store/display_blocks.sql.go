package store

import (
	"context"
	"database/sql"
)

const displayBlockColumns = `id, name, position, type, order_index, item_count, is_visible, target_page, html_content, source`

func scanDisplayBlock(row interface{ Scan(...any) error }) (DisplayBlock, error) {
	var i DisplayBlock
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Position,
		&i.Type,
		&i.OrderIndex,
		&i.ItemCount,
		&i.IsVisible,
		&i.TargetPage,
		&i.HtmlContent,
		&i.Source,
	)
	return i, err
}

func (q *Queries) queryDisplayBlocks(ctx context.Context, query string, args ...any) ([]DisplayBlock, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DisplayBlock{}
	for rows.Next() {
		i, err := scanDisplayBlock(rows)
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

const listDisplayBlocks = `-- name: ListDisplayBlocks :many
SELECT ` + displayBlockColumns + ` FROM display_blocks ORDER BY position, order_index, id`

func (q *Queries) ListDisplayBlocks(ctx context.Context) ([]DisplayBlock, error) {
	return q.queryDisplayBlocks(ctx, listDisplayBlocks)
}

const listDisplayBlocksByPosition = `-- name: ListDisplayBlocksByPosition :many
SELECT ` + displayBlockColumns + ` FROM display_blocks WHERE position = ? ORDER BY order_index, id`

func (q *Queries) ListDisplayBlocksByPosition(ctx context.Context, position string) ([]DisplayBlock, error) {
	return q.queryDisplayBlocks(ctx, listDisplayBlocksByPosition, position)
}

const getDisplayBlock = `-- name: GetDisplayBlock :one
SELECT ` + displayBlockColumns + ` FROM display_blocks WHERE id = ?`

func (q *Queries) GetDisplayBlock(ctx context.Context, id int64) (DisplayBlock, error) {
	return scanDisplayBlock(q.db.QueryRowContext(ctx, getDisplayBlock, id))
}

const maxDisplayBlockOrder = `-- name: MaxDisplayBlockOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM display_blocks WHERE position = ?`

func (q *Queries) MaxDisplayBlockOrder(ctx context.Context, position string) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxDisplayBlockOrder, position).Scan(&max)
	return max, err
}

const createDisplayBlock = `-- name: CreateDisplayBlock :one
INSERT INTO display_blocks (name, position, type, order_index, item_count, is_visible, target_page, html_content, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + displayBlockColumns

type CreateDisplayBlockParams struct {
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Type        string         `json:"type"`
	OrderIndex  int64          `json:"order_index"`
	ItemCount   int64          `json:"item_count"`
	IsVisible   bool           `json:"is_visible"`
	TargetPage  string         `json:"target_page"`
	HtmlContent sql.NullString `json:"html_content"`
	Source      sql.NullString `json:"source"`
}

func (q *Queries) CreateDisplayBlock(ctx context.Context, arg CreateDisplayBlockParams) (DisplayBlock, error) {
	row := q.db.QueryRowContext(ctx, createDisplayBlock,
		arg.Name,
		arg.Position,
		arg.Type,
		arg.OrderIndex,
		arg.ItemCount,
		arg.IsVisible,
		arg.TargetPage,
		arg.HtmlContent,
		arg.Source,
	)
	return scanDisplayBlock(row)
}

const updateDisplayBlock = `-- name: UpdateDisplayBlock :one
UPDATE display_blocks SET name = ?, position = ?, type = ?, order_index = ?, item_count = ?,
    is_visible = ?, target_page = ?, html_content = ?, source = ?
WHERE id = ?
RETURNING ` + displayBlockColumns

type UpdateDisplayBlockParams struct {
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Type        string         `json:"type"`
	OrderIndex  int64          `json:"order_index"`
	ItemCount   int64          `json:"item_count"`
	IsVisible   bool           `json:"is_visible"`
	TargetPage  string         `json:"target_page"`
	HtmlContent sql.NullString `json:"html_content"`
	Source      sql.NullString `json:"source"`
	ID          int64          `json:"id"`
}

func (q *Queries) UpdateDisplayBlock(ctx context.Context, arg UpdateDisplayBlockParams) (DisplayBlock, error) {
	row := q.db.QueryRowContext(ctx, updateDisplayBlock,
		arg.Name,
		arg.Position,
		arg.Type,
		arg.OrderIndex,
		arg.ItemCount,
		arg.IsVisible,
		arg.TargetPage,
		arg.HtmlContent,
		arg.Source,
		arg.ID,
	)
	return scanDisplayBlock(row)
}

const updateDisplayBlockOrder = `-- name: UpdateDisplayBlockOrder :execrows
UPDATE display_blocks SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateDisplayBlockOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateDisplayBlockOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteDisplayBlock = `-- name: DeleteDisplayBlock :execrows
DELETE FROM display_blocks WHERE id = ?`

func (q *Queries) DeleteDisplayBlock(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDisplayBlock, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
