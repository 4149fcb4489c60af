package store

import "context"

func scanPostCategory(row interface{ Scan(...any) error }) (PostCategory, error) {
	var i PostCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.Color, &i.OrderIndex)
	return i, err
}

const listPostCategories = `-- name: ListPostCategories :many
SELECT id, name, slug, color, order_index FROM post_categories ORDER BY order_index, id`

func (q *Queries) ListPostCategories(ctx context.Context) ([]PostCategory, error) {
	rows, err := q.db.QueryContext(ctx, listPostCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []PostCategory{}
	for rows.Next() {
		i, err := scanPostCategory(rows)
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

const getPostCategory = `-- name: GetPostCategory :one
SELECT id, name, slug, color, order_index FROM post_categories WHERE id = ?`

func (q *Queries) GetPostCategory(ctx context.Context, id int64) (PostCategory, error) {
	return scanPostCategory(q.db.QueryRowContext(ctx, getPostCategory, id))
}

const postCategorySlugExists = `-- name: PostCategorySlugExists :one
SELECT COUNT(*) FROM post_categories WHERE slug = ? AND id <> ?`

func (q *Queries) PostCategorySlugExists(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, postCategorySlugExists, slug, excludeID).Scan(&count)
	return count, err
}

const maxPostCategoryOrder = `-- name: MaxPostCategoryOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM post_categories`

func (q *Queries) MaxPostCategoryOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxPostCategoryOrder).Scan(&max)
	return max, err
}

const createPostCategory = `-- name: CreatePostCategory :one
INSERT INTO post_categories (name, slug, color, order_index) VALUES (?, ?, ?, ?)
RETURNING id, name, slug, color, order_index`

type CreatePostCategoryParams struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	OrderIndex int64  `json:"order_index"`
}

func (q *Queries) CreatePostCategory(ctx context.Context, arg CreatePostCategoryParams) (PostCategory, error) {
	row := q.db.QueryRowContext(ctx, createPostCategory, arg.Name, arg.Slug, arg.Color, arg.OrderIndex)
	return scanPostCategory(row)
}

const updatePostCategory = `-- name: UpdatePostCategory :one
UPDATE post_categories SET name = ?, slug = ?, color = ?, order_index = ? WHERE id = ?
RETURNING id, name, slug, color, order_index`

type UpdatePostCategoryParams struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	OrderIndex int64  `json:"order_index"`
	ID         int64  `json:"id"`
}

func (q *Queries) UpdatePostCategory(ctx context.Context, arg UpdatePostCategoryParams) (PostCategory, error) {
	row := q.db.QueryRowContext(ctx, updatePostCategory, arg.Name, arg.Slug, arg.Color, arg.OrderIndex, arg.ID)
	return scanPostCategory(row)
}

const updatePostCategoryOrder = `-- name: UpdatePostCategoryOrder :execrows
UPDATE post_categories SET order_index = ? WHERE id = ?`

func (q *Queries) UpdatePostCategoryOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePostCategoryOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePostCategory = `-- name: DeletePostCategory :execrows
DELETE FROM post_categories WHERE id = ?`

func (q *Queries) DeletePostCategory(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePostCategory, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
