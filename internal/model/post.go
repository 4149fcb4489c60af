// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Default post category slugs seeded on first run.
const (
	PostCategoryNews         = "news"
	PostCategoryAnnouncement = "announcement"
	PostCategoryActivity     = "activity"
	PostCategoryProfessional = "professional"
)

// Attachment is a downloadable file linked from a post.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Post is a news article or announcement.
// Content and Attachments are heavy fields omitted from list projections.
type Post struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Summary      string       `json:"summary"`
	Content      string       `json:"content,omitempty"`
	Thumbnail    string       `json:"thumbnail"`
	ImageCaption string       `json:"image_caption"`
	Author       string       `json:"author"`
	Date         string       `json:"date"`
	Category     string       `json:"category"`
	Views        int64        `json:"views"`
	Status       string       `json:"status"`
	IsFeatured   bool         `json:"is_featured"`
	ShowOnHome   bool         `json:"show_on_home"`
	BlockIDs     []int64      `json:"block_ids"`
	Tags         []string     `json:"tags"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HasBody reports whether the full article body has been loaded.
func (p Post) HasBody() bool {
	return strings.TrimSpace(p.Content) != ""
}

// IsPublished reports whether the post is visible on the public site.
func (p Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// DefaultCategoryColor is the badge color of a new post category.
const DefaultCategoryColor = "#2563eb"

// PostCategory groups posts. Slug is unique and URL-safe.
type PostCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	OrderIndex int    `json:"order_index"`
}

// contentDateLayouts are the date formats accepted for stored content dates.
var contentDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"02/01/2006",
}

// ParseContentDate parses a stored content date string.
// The second return value is false when no known layout matches.
func ParseContentDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range contentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
