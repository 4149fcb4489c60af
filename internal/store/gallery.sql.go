package store

import "context"

func scanGalleryAlbum(row interface{ Scan(...any) error }) (GalleryAlbum, error) {
	var i GalleryAlbum
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Thumbnail, &i.CreatedDate)
	return i, err
}

func scanGalleryImage(row interface{ Scan(...any) error }) (GalleryImage, error) {
	var i GalleryImage
	err := row.Scan(&i.ID, &i.Url, &i.Caption, &i.AlbumID)
	return i, err
}

const listGalleryAlbums = `-- name: ListGalleryAlbums :many
SELECT id, title, description, thumbnail, created_date FROM gallery_albums
ORDER BY created_date DESC, id DESC`

func (q *Queries) ListGalleryAlbums(ctx context.Context) ([]GalleryAlbum, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryAlbums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GalleryAlbum{}
	for rows.Next() {
		i, err := scanGalleryAlbum(rows)
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

const getGalleryAlbum = `-- name: GetGalleryAlbum :one
SELECT id, title, description, thumbnail, created_date FROM gallery_albums WHERE id = ?`

func (q *Queries) GetGalleryAlbum(ctx context.Context, id int64) (GalleryAlbum, error) {
	return scanGalleryAlbum(q.db.QueryRowContext(ctx, getGalleryAlbum, id))
}

const createGalleryAlbum = `-- name: CreateGalleryAlbum :one
INSERT INTO gallery_albums (title, description, thumbnail, created_date) VALUES (?, ?, ?, ?)
RETURNING id, title, description, thumbnail, created_date`

type CreateGalleryAlbumParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	CreatedDate string `json:"created_date"`
}

func (q *Queries) CreateGalleryAlbum(ctx context.Context, arg CreateGalleryAlbumParams) (GalleryAlbum, error) {
	row := q.db.QueryRowContext(ctx, createGalleryAlbum, arg.Title, arg.Description, arg.Thumbnail, arg.CreatedDate)
	return scanGalleryAlbum(row)
}

const updateGalleryAlbum = `-- name: UpdateGalleryAlbum :one
UPDATE gallery_albums SET title = ?, description = ?, thumbnail = ?, created_date = ? WHERE id = ?
RETURNING id, title, description, thumbnail, created_date`

type UpdateGalleryAlbumParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	CreatedDate string `json:"created_date"`
	ID          int64  `json:"id"`
}

func (q *Queries) UpdateGalleryAlbum(ctx context.Context, arg UpdateGalleryAlbumParams) (GalleryAlbum, error) {
	row := q.db.QueryRowContext(ctx, updateGalleryAlbum, arg.Title, arg.Description, arg.Thumbnail, arg.CreatedDate, arg.ID)
	return scanGalleryAlbum(row)
}

const deleteGalleryAlbum = `-- name: DeleteGalleryAlbum :execrows
DELETE FROM gallery_albums WHERE id = ?`

func (q *Queries) DeleteGalleryAlbum(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGalleryAlbum, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listGalleryImages = `-- name: ListGalleryImages :many
SELECT id, url, caption, album_id FROM gallery_images ORDER BY album_id, id`

func (q *Queries) ListGalleryImages(ctx context.Context) ([]GalleryImage, error) {
	return q.queryGalleryImages(ctx, listGalleryImages)
}

const listGalleryImagesByAlbum = `-- name: ListGalleryImagesByAlbum :many
SELECT id, url, caption, album_id FROM gallery_images WHERE album_id = ? ORDER BY id`

func (q *Queries) ListGalleryImagesByAlbum(ctx context.Context, albumID int64) ([]GalleryImage, error) {
	return q.queryGalleryImages(ctx, listGalleryImagesByAlbum, albumID)
}

func (q *Queries) queryGalleryImages(ctx context.Context, query string, args ...any) ([]GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GalleryImage{}
	for rows.Next() {
		i, err := scanGalleryImage(rows)
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

const createGalleryImage = `-- name: CreateGalleryImage :one
INSERT INTO gallery_images (url, caption, album_id) VALUES (?, ?, ?)
RETURNING id, url, caption, album_id`

type CreateGalleryImageParams struct {
	Url     string `json:"url"`
	Caption string `json:"caption"`
	AlbumID int64  `json:"album_id"`
}

func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (GalleryImage, error) {
	row := q.db.QueryRowContext(ctx, createGalleryImage, arg.Url, arg.Caption, arg.AlbumID)
	return scanGalleryImage(row)
}

const deleteGalleryImage = `-- name: DeleteGalleryImage :execrows
DELETE FROM gallery_images WHERE id = ?`

func (q *Queries) DeleteGalleryImage(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGalleryImage, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
