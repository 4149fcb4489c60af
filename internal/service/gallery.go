package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// ListGalleryAlbums returns every album, newest first.
func (r *Repository) ListGalleryAlbums(ctx context.Context) ([]model.GalleryAlbum, error) {
	rows, err := r.queries.ListGalleryAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gallery albums: %w", err)
	}
	return mapRows(rows, galleryAlbumFromRow), nil
}

// GetGalleryAlbum returns an album by id.
func (r *Repository) GetGalleryAlbum(ctx context.Context, id int64) (model.GalleryAlbum, error) {
	row, err := r.queries.GetGalleryAlbum(ctx, id)
	if err != nil {
		return model.GalleryAlbum{}, notFound(err, "gallery album", id)
	}
	return galleryAlbumFromRow(row), nil
}

// CreateGalleryAlbum validates and inserts an album.
func (r *Repository) CreateGalleryAlbum(ctx context.Context, in model.GalleryAlbum) (model.GalleryAlbum, error) {
	in, err := prepareAlbum(in)
	if err != nil {
		return model.GalleryAlbum{}, err
	}
	row, err := r.queries.CreateGalleryAlbum(ctx, store.CreateGalleryAlbumParams{
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		CreatedDate: in.CreatedDate,
	})
	if err != nil {
		return model.GalleryAlbum{}, fmt.Errorf("creating gallery album: %w", err)
	}
	return galleryAlbumFromRow(row), nil
}

// UpdateGalleryAlbum validates and overwrites an album.
func (r *Repository) UpdateGalleryAlbum(ctx context.Context, id int64, in model.GalleryAlbum) (model.GalleryAlbum, error) {
	if _, err := r.queries.GetGalleryAlbum(ctx, id); err != nil {
		return model.GalleryAlbum{}, notFound(err, "gallery album", id)
	}
	in, err := prepareAlbum(in)
	if err != nil {
		return model.GalleryAlbum{}, err
	}
	row, err := r.queries.UpdateGalleryAlbum(ctx, store.UpdateGalleryAlbumParams{
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		CreatedDate: in.CreatedDate,
		ID:          id,
	})
	if err != nil {
		return model.GalleryAlbum{}, fmt.Errorf("updating gallery album %d: %w", id, err)
	}
	return galleryAlbumFromRow(row), nil
}

// DeleteGalleryAlbum removes an album together with its images.
func (r *Repository) DeleteGalleryAlbum(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteGalleryAlbum(ctx, id)
	return affected(n, err, "gallery album", id)
}

// ListGalleryImages returns every image of every album.
func (r *Repository) ListGalleryImages(ctx context.Context) ([]model.GalleryImage, error) {
	rows, err := r.queries.ListGalleryImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gallery images: %w", err)
	}
	return mapRows(rows, galleryImageFromRow), nil
}

// ListAlbumImages returns the images of one album.
func (r *Repository) ListAlbumImages(ctx context.Context, albumID int64) ([]model.GalleryImage, error) {
	rows, err := r.queries.ListGalleryImagesByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("listing images of album %d: %w", albumID, err)
	}
	return mapRows(rows, galleryImageFromRow), nil
}

// AddGalleryImage adds an image URL to an album.
func (r *Repository) AddGalleryImage(ctx context.Context, in model.GalleryImage) (model.GalleryImage, error) {
	in.URL = strings.TrimSpace(in.URL)
	if in.URL == "" {
		return model.GalleryImage{}, &ValidationError{Fields: map[string]string{"url": "Đường dẫn ảnh không được để trống"}}
	}
	if _, err := r.queries.GetGalleryAlbum(ctx, in.AlbumID); err != nil {
		return model.GalleryImage{}, notFound(err, "gallery album", in.AlbumID)
	}
	row, err := r.queries.CreateGalleryImage(ctx, store.CreateGalleryImageParams{
		Url:     in.URL,
		Caption: strings.TrimSpace(in.Caption),
		AlbumID: in.AlbumID,
	})
	if err != nil {
		return model.GalleryImage{}, fmt.Errorf("adding gallery image: %w", err)
	}
	return galleryImageFromRow(row), nil
}

// DeleteGalleryImage removes one image.
func (r *Repository) DeleteGalleryImage(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteGalleryImage(ctx, id)
	return affected(n, err, "gallery image", id)
}

func prepareAlbum(in model.GalleryAlbum) (model.GalleryAlbum, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, &ValidationError{Fields: map[string]string{"title": "Tên album không được để trống"}}
	}
	if strings.TrimSpace(in.CreatedDate) == "" {
		in.CreatedDate = time.Now().Format("2006-01-02")
	}
	return in, nil
}
