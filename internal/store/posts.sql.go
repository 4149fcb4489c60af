package store

import (
	"context"
	"time"
)

const postColumns = `id, title, slug, summary, content, thumbnail, image_caption, author, date,
category, views, status, is_featured, show_on_home, block_ids, tags, attachments,
created_at, updated_at`

// postSummaryColumns leaves out the heavy content and attachments columns.
const postSummaryColumns = `id, title, slug, summary, '' AS content, thumbnail, image_caption, author, date,
category, views, status, is_featured, show_on_home, block_ids, tags, '[]' AS attachments,
created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var i Post
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Summary,
		&i.Content,
		&i.Thumbnail,
		&i.ImageCaption,
		&i.Author,
		&i.Date,
		&i.Category,
		&i.Views,
		&i.Status,
		&i.IsFeatured,
		&i.ShowOnHome,
		&i.BlockIds,
		&i.Tags,
		&i.Attachments,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Post{}
	for rows.Next() {
		i, err := scanPost(rows)
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

const listPostSummaries = `-- name: ListPostSummaries :many
SELECT ` + postSummaryColumns + `
FROM posts
ORDER BY date DESC, id DESC
LIMIT ?`

func (q *Queries) ListPostSummaries(ctx context.Context, limit int64) ([]Post, error) {
	return q.queryPosts(ctx, listPostSummaries, limit)
}

const listPosts = `-- name: ListPosts :many
SELECT ` + postSummaryColumns + `
FROM posts
WHERE (? = '' OR status = ?) AND (? = '' OR category = ?)
ORDER BY date DESC, id DESC
LIMIT ? OFFSET ?`

type ListPostsParams struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Limit    int64  `json:"limit"`
	Offset   int64  `json:"offset"`
}

func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]Post, error) {
	return q.queryPosts(ctx, listPosts,
		arg.Status, arg.Status,
		arg.Category, arg.Category,
		arg.Limit, arg.Offset,
	)
}

const countPosts = `-- name: CountPosts :one
SELECT COUNT(*) FROM posts
WHERE (? = '' OR status = ?) AND (? = '' OR category = ?)`

func (q *Queries) CountPosts(ctx context.Context, status, category string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPosts, status, status, category, category).Scan(&count)
	return count, err
}

const getPost = `-- name: GetPost :one
SELECT ` + postColumns + ` FROM posts WHERE id = ?`

func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPost, id))
}

const getPostBySlug = `-- name: GetPostBySlug :one
SELECT ` + postColumns + ` FROM posts WHERE slug = ?`

func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostBySlug, slug))
}

const postSlugExists = `-- name: PostSlugExists :one
SELECT COUNT(*) FROM posts WHERE slug = ? AND id <> ?`

// PostSlugExists reports how many posts other than excludeID use slug.
func (q *Queries) PostSlugExists(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, postSlugExists, slug, excludeID).Scan(&count)
	return count, err
}

const createPost = `-- name: CreatePost :one
INSERT INTO posts (title, slug, summary, content, thumbnail, image_caption, author, date,
    category, status, is_featured, show_on_home, block_ids, tags, attachments, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + postColumns

type CreatePostParams struct {
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Thumbnail    string    `json:"thumbnail"`
	ImageCaption string    `json:"image_caption"`
	Author       string    `json:"author"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"is_featured"`
	ShowOnHome   bool      `json:"show_on_home"`
	BlockIds     string    `json:"block_ids"`
	Tags         string    `json:"tags"`
	Attachments  string    `json:"attachments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title,
		arg.Slug,
		arg.Summary,
		arg.Content,
		arg.Thumbnail,
		arg.ImageCaption,
		arg.Author,
		arg.Date,
		arg.Category,
		arg.Status,
		arg.IsFeatured,
		arg.ShowOnHome,
		arg.BlockIds,
		arg.Tags,
		arg.Attachments,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanPost(row)
}

const updatePost = `-- name: UpdatePost :one
UPDATE posts SET
    title = ?, slug = ?, summary = ?, content = ?, thumbnail = ?, image_caption = ?,
    author = ?, date = ?, category = ?, status = ?, is_featured = ?, show_on_home = ?,
    block_ids = ?, tags = ?, attachments = ?, updated_at = ?
WHERE id = ?
RETURNING ` + postColumns

type UpdatePostParams struct {
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Thumbnail    string    `json:"thumbnail"`
	ImageCaption string    `json:"image_caption"`
	Author       string    `json:"author"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"is_featured"`
	ShowOnHome   bool      `json:"show_on_home"`
	BlockIds     string    `json:"block_ids"`
	Tags         string    `json:"tags"`
	Attachments  string    `json:"attachments"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           int64     `json:"id"`
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost,
		arg.Title,
		arg.Slug,
		arg.Summary,
		arg.Content,
		arg.Thumbnail,
		arg.ImageCaption,
		arg.Author,
		arg.Date,
		arg.Category,
		arg.Status,
		arg.IsFeatured,
		arg.ShowOnHome,
		arg.BlockIds,
		arg.Tags,
		arg.Attachments,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanPost(row)
}

const deletePost = `-- name: DeletePost :execrows
DELETE FROM posts WHERE id = ?`

func (q *Queries) DeletePost(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const incrementPostViews = `-- name: IncrementPostViews :execrows
UPDATE posts SET views = views + 1 WHERE id = ?`

func (q *Queries) IncrementPostViews(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, incrementPostViews, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const renamePostCategory = `-- name: RenamePostCategory :exec
UPDATE posts SET category = ? WHERE category = ?`

// RenamePostCategory moves posts from oldSlug to newSlug after a category
// slug change.
func (q *Queries) RenamePostCategory(ctx context.Context, newSlug, oldSlug string) error {
	_, err := q.db.ExecContext(ctx, renamePostCategory, newSlug, oldSlug)
	return err
}
