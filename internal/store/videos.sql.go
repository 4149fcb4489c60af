package store

import (
	"context"
	"time"
)

func scanVideo(row interface{ Scan(...any) error }) (Video, error) {
	var i Video
	err := row.Scan(&i.ID, &i.Title, &i.YoutubeID, &i.Description, &i.OrderIndex, &i.CreatedAt)
	return i, err
}

const listVideos = `-- name: ListVideos :many
SELECT id, title, youtube_id, description, order_index, created_at FROM videos
ORDER BY order_index, id`

func (q *Queries) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := q.db.QueryContext(ctx, listVideos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Video{}
	for rows.Next() {
		i, err := scanVideo(rows)
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

const getVideo = `-- name: GetVideo :one
SELECT id, title, youtube_id, description, order_index, created_at FROM videos WHERE id = ?`

func (q *Queries) GetVideo(ctx context.Context, id int64) (Video, error) {
	return scanVideo(q.db.QueryRowContext(ctx, getVideo, id))
}

const maxVideoOrder = `-- name: MaxVideoOrder :one
SELECT COALESCE(MAX(order_index), 0) FROM videos`

func (q *Queries) MaxVideoOrder(ctx context.Context) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx, maxVideoOrder).Scan(&max)
	return max, err
}

const createVideo = `-- name: CreateVideo :one
INSERT INTO videos (title, youtube_id, description, order_index, created_at) VALUES (?, ?, ?, ?, ?)
RETURNING id, title, youtube_id, description, order_index, created_at`

type CreateVideoParams struct {
	Title       string    `json:"title"`
	YoutubeID   string    `json:"youtube_id"`
	Description string    `json:"description"`
	OrderIndex  int64     `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) (Video, error) {
	row := q.db.QueryRowContext(ctx, createVideo, arg.Title, arg.YoutubeID, arg.Description, arg.OrderIndex, arg.CreatedAt)
	return scanVideo(row)
}

const updateVideo = `-- name: UpdateVideo :one
UPDATE videos SET title = ?, youtube_id = ?, description = ?, order_index = ? WHERE id = ?
RETURNING id, title, youtube_id, description, order_index, created_at`

type UpdateVideoParams struct {
	Title       string `json:"title"`
	YoutubeID   string `json:"youtube_id"`
	Description string `json:"description"`
	OrderIndex  int64  `json:"order_index"`
	ID          int64  `json:"id"`
}

func (q *Queries) UpdateVideo(ctx context.Context, arg UpdateVideoParams) (Video, error) {
	row := q.db.QueryRowContext(ctx, updateVideo, arg.Title, arg.YoutubeID, arg.Description, arg.OrderIndex, arg.ID)
	return scanVideo(row)
}

const updateVideoOrder = `-- name: UpdateVideoOrder :execrows
UPDATE videos SET order_index = ? WHERE id = ?`

func (q *Queries) UpdateVideoOrder(ctx context.Context, orderIndex, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateVideoOrder, orderIndex, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteVideo = `-- name: DeleteVideo :execrows
DELETE FROM videos WHERE id = ?`

func (q *Queries) DeleteVideo(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteVideo, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
