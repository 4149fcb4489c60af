package store

import "context"

const introductionColumns = `id, title, slug, content, image_url, order_index, is_visible`

func scanIntroduction(row interface{ Scan(...any) error }) (Introduction, error) {
	var i Introduction
	err := row.Scan(&i.ID, &i.Title, &i.Slug, &i.Content, &i.ImageUrl, &i.OrderIndex, &i.IsVisible)
	return i, err
}

const listIntroductions = `-- name: ListIntroductions :many
SELECT ` + introductionColumns + ` FROM introductions ORDER BY order_index, id`

func (q *Queries) ListIntroductions(ctx context.Context) ([]Introduction, error) {
	rows, err := q.db.QueryContext(ctx, listIntroductions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Introduction{}
	for rows.Next() {
		i, err := scanIntroduction(rows)
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

const getIntroduction = `-- name: GetIntroduction :one
SELECT ` + introductionColumns + ` FROM introductions WHERE id = ?`

func (q *Queries) GetIntroduction(ctx context.Context, id int64) (Introduction, error) {
	return scanIntroduction(q.db.QueryRowContext(ctx, getIntroduction, id))
}

const introductionSlugExists = `-- name: IntroductionSlugExists :one
SELECT COUNT(*) FROM introductions WHERE slug = ? AND id <> ?`

func (q *Queries) IntroductionSlugExists(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, introductionSlugExists, slug, excludeID).Scan(&count)
	return count, err
}

const maxIntroductionOrder = `-- name: MaxIntroductionOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM introductions`

func (q *Queries) MaxIntroductionOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxIntroductionOrder).Scan(&max)
	return max, err
}

const createIntroduction = `-- name: CreateIntroduction :one
INSERT INTO introductions (title, slug, content, image_url, order_index, is_visible)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + introductionColumns

type CreateIntroductionParams struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	ImageUrl   string `json:"image_url"`
	OrderIndex int64  `json:"order_index"`
	IsVisible  bool   `json:"is_visible"`
}

func (q *Queries) CreateIntroduction(ctx context.Context, arg CreateIntroductionParams) (Introduction, error) {
	row := q.db.QueryRowContext(ctx, createIntroduction,
		arg.Title,
		arg.Slug,
		arg.Content,
		arg.ImageUrl,
		arg.OrderIndex,
		arg.IsVisible,
	)
	return scanIntroduction(row)
}

const updateIntroduction = `-- name: UpdateIntroduction :one
UPDATE introductions SET title = ?, slug = ?, content = ?, image_url = ?, order_index = ?, is_visible = ?
WHERE id = ?
RETURNING ` + introductionColumns

type UpdateIntroductionParams struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	ImageUrl   string `json:"image_url"`
	OrderIndex int64  `json:"order_index"`
	IsVisible  bool   `json:"is_visible"`
	ID         int64  `json:"id"`
}

func (q *Queries) UpdateIntroduction(ctx context.Context, arg UpdateIntroductionParams) (Introduction, error) {
	row := q.db.QueryRowContext(ctx, updateIntroduction,
		arg.Title,
		arg.Slug,
		arg.Content,
		arg.ImageUrl,
		arg.OrderIndex,
		arg.IsVisible,
		arg.ID,
	)
	return scanIntroduction(row)
}

const updateIntroductionOrder = `-- name: UpdateIntroductionOrder :execrows
UPDATE introductions SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateIntroductionOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateIntroductionOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteIntroduction = `-- name: DeleteIntroduction :execrows
DELETE FROM introductions WHERE id = ?`

func (q *Queries) DeleteIntroduction(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteIntroduction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
