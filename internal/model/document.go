package model

import "time"

// DefaultDocumentCategorySlug is the category shown when the documents page
// is opened without an explicit category.
const DefaultDocumentCategorySlug = "official"

// Document is an official school document with a download link.
type Document struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	CategoryID  int64     `json:"category_id"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentCategory groups documents. Slug is unique and URL-safe.
type DocumentCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}
