package store

import "context"

func scanDocumentCategory(row interface{ Scan(...any) error }) (DocumentCategory, error) {
	var i DocumentCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.Description, &i.OrderIndex)
	return i, err
}

const listDocumentCategories = `-- name: ListDocumentCategories :many
SELECT id, name, slug, description, order_index FROM document_categories ORDER BY order_index, id`

func (q *Queries) ListDocumentCategories(ctx context.Context) ([]DocumentCategory, error) {
	rows, err := q.db.QueryContext(ctx, listDocumentCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DocumentCategory{}
	for rows.Next() {
		i, err := scanDocumentCategory(rows)
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

const getDocumentCategory = `-- name: GetDocumentCategory :one
SELECT id, name, slug, description, order_index FROM document_categories WHERE id = ?`

func (q *Queries) GetDocumentCategory(ctx context.Context, id int64) (DocumentCategory, error) {
	return scanDocumentCategory(q.db.QueryRowContext(ctx, getDocumentCategory, id))
}

const documentCategorySlugExists = `-- name: DocumentCategorySlugExists :one
SELECT COUNT(*) FROM document_categories WHERE slug = ? AND id <> ?`

func (q *Queries) DocumentCategorySlugExists(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, documentCategorySlugExists, slug, excludeID).Scan(&count)
	return count, err
}

const maxDocumentCategoryOrder = `-- name: MaxDocumentCategoryOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM document_categories`

func (q *Queries) MaxDocumentCategoryOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxDocumentCategoryOrder).Scan(&max)
	return max, err
}

const createDocumentCategory = `-- name: CreateDocumentCategory :one
INSERT INTO document_categories (name, slug, description, order_index) VALUES (?, ?, ?, ?)
RETURNING id, name, slug, description, order_index`

type CreateDocumentCategoryParams struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	OrderIndex  int64  `json:"order_index"`
}

func (q *Queries) CreateDocumentCategory(ctx context.Context, arg CreateDocumentCategoryParams) (DocumentCategory, error) {
	row := q.db.QueryRowContext(ctx, createDocumentCategory, arg.Name, arg.Slug, arg.Description, arg.OrderIndex)
	return scanDocumentCategory(row)
}

const updateDocumentCategory = `-- name: UpdateDocumentCategory :one
UPDATE document_categories SET name = ?, slug = ?, description = ?, order_index = ? WHERE id = ?
RETURNING id, name, slug, description, order_index`

type UpdateDocumentCategoryParams struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	OrderIndex  int64  `json:"order_index"`
	ID          int64  `json:"id"`
}

func (q *Queries) UpdateDocumentCategory(ctx context.Context, arg UpdateDocumentCategoryParams) (DocumentCategory, error) {
	row := q.db.QueryRowContext(ctx, updateDocumentCategory, arg.Name, arg.Slug, arg.Description, arg.OrderIndex, arg.ID)
	return scanDocumentCategory(row)
}

const updateDocumentCategoryOrder = `-- name: UpdateDocumentCategoryOrder :execrows
UPDATE document_categories SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateDocumentCategoryOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateDocumentCategoryOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteDocumentCategory = `-- name: DeleteDocumentCategory :execrows
DELETE FROM document_categories WHERE id = ?`

func (q *Queries) DeleteDocumentCategory(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDocumentCategory, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
