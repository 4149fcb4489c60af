package model

import "time"

// GalleryAlbum is a named set of gallery images.
type GalleryAlbum struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	CreatedDate string `json:"created_date"`
}

// GalleryImage is a single image in an album.
type GalleryImage struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	AlbumID int64  `json:"album_id"`
}

// Video is an embedded video listed on the resources page.
type Video struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	YoutubeID   string    `json:"youtube_id"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}
