package store

import (
	"context"
	"time"
)

func scanDocument(row interface{ Scan(...any) error }) (Document, error) {
	var i Document
	err := row.Scan(&i.ID, &i.Number, &i.Title, &i.Date, &i.CategoryID, &i.DownloadUrl, &i.CreatedAt)
	return i, err
}

const listDocuments = `-- name: ListDocuments :many
SELECT id, number, title, date, category_id, download_url, created_at
FROM documents
ORDER BY date DESC, id DESC`

func (q *Queries) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := q.db.QueryContext(ctx, listDocuments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Document{}
	for rows.Next() {
		i, err := scanDocument(rows)
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

const getDocument = `-- name: GetDocument :one
SELECT id, number, title, date, category_id, download_url, created_at FROM documents WHERE id = ?`

func (q *Queries) GetDocument(ctx context.Context, id int64) (Document, error) {
	return scanDocument(q.db.QueryRowContext(ctx, getDocument, id))
}

const countDocumentsByCategory = `-- name: CountDocumentsByCategory :one
SELECT COUNT(*) FROM documents WHERE category_id = ?`

func (q *Queries) CountDocumentsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countDocumentsByCategory, categoryID).Scan(&count)
	return count, err
}

const createDocument = `-- name: CreateDocument :one
INSERT INTO documents (number, title, date, category_id, download_url, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, number, title, date, category_id, download_url, created_at`

type CreateDocumentParams struct {
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	CategoryID  int64     `json:"category_id"`
	DownloadUrl string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateDocument(ctx context.Context, arg CreateDocumentParams) (Document, error) {
	row := q.db.QueryRowContext(ctx, createDocument,
		arg.Number,
		arg.Title,
		arg.Date,
		arg.CategoryID,
		arg.DownloadUrl,
		arg.CreatedAt,
	)
	return scanDocument(row)
}

const updateDocument = `-- name: UpdateDocument :one
UPDATE documents SET number = ?, title = ?, date = ?, category_id = ?, download_url = ?
WHERE id = ?
RETURNING id, number, title, date, category_id, download_url, created_at`

type UpdateDocumentParams struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	CategoryID  int64  `json:"category_id"`
	DownloadUrl string `json:"download_url"`
	ID          int64  `json:"id"`
}

func (q *Queries) UpdateDocument(ctx context.Context, arg UpdateDocumentParams) (Document, error) {
	row := q.db.QueryRowContext(ctx, updateDocument,
		arg.Number,
		arg.Title,
		arg.Date,
		arg.CategoryID,
		arg.DownloadUrl,
		arg.ID,
	)
	return scanDocument(row)
}

const deleteDocument = `-- name: DeleteDocument :execrows
DELETE FROM documents WHERE id = ?`

func (q *Queries) DeleteDocument(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDocument, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
