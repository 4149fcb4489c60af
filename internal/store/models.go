// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"password_hash"`
	Role         string       `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
}

type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type SiteConfig struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Slogan            string    `json:"slogan"`
	LogoUrl           string    `json:"logo_url"`
	BannerUrl         string    `json:"banner_url"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	Hotline           string    `json:"hotline"`
	Website           string    `json:"website"`
	Fanpage           string    `json:"fanpage"`
	MapEmbed          string    `json:"map_embed"`
	FooterText        string    `json:"footer_text"`
	PrimaryColor      string    `json:"primary_color"`
	MetaTitle         string    `json:"meta_title"`
	MetaDescription   string    `json:"meta_description"`
	HomeNewsCount     int64     `json:"home_news_count"`
	HomeShowProgram   bool      `json:"home_show_program"`
	ShowWelcomeBanner bool      `json:"show_welcome_banner"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PostCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	OrderIndex int64  `json:"order_index"`
}

// Post mirrors the posts table. BlockIds, Tags and Attachments hold JSON arrays.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	Thumbnail    string    `json:"thumbnail"`
	ImageCaption string    `json:"image_caption"`
	Author       string    `json:"author"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Views        int64     `json:"views"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"is_featured"`
	ShowOnHome   bool      `json:"show_on_home"`
	BlockIds     string    `json:"block_ids"`
	Tags         string    `json:"tags"`
	Attachments  string    `json:"attachments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DocumentCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	OrderIndex  int64  `json:"order_index"`
}

type Document struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	CategoryID  int64     `json:"category_id"`
	DownloadUrl string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type GalleryAlbum struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	CreatedDate string `json:"created_date"`
}

type GalleryImage struct {
	ID      int64  `json:"id"`
	Url     string `json:"url"`
	Caption string `json:"caption"`
	AlbumID int64  `json:"album_id"`
}

type Video struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	YoutubeID   string    `json:"youtube_id"`
	Description string    `json:"description"`
	OrderIndex  int64     `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type StaffMember struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	PartyDate  string `json:"party_date"`
	Email      string `json:"email"`
	AvatarUrl  string `json:"avatar_url"`
	OrderIndex int64  `json:"order_index"`
}

type Introduction struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	ImageUrl   string `json:"image_url"`
	OrderIndex int64  `json:"order_index"`
	IsVisible  bool   `json:"is_visible"`
}

type MenuItem struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Path       string `json:"path"`
	OrderIndex int64  `json:"order_index"`
}

type DisplayBlock struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Type        string         `json:"type"`
	OrderIndex  int64          `json:"order_index"`
	ItemCount   int64          `json:"item_count"`
	IsVisible   bool           `json:"is_visible"`
	TargetPage  string         `json:"target_page"`
	HtmlContent sql.NullString `json:"html_content"`
	Source      sql.NullString `json:"source"`
}

type Visit struct {
	ID          int64  `json:"id"`
	VisitorID   string `json:"visitor_id"`
	SessionHash string `json:"session_hash"`
	Path        string `json:"path"`
	Browser     string `json:"browser"`
	Os          string `json:"os"`
	DeviceType  string `json:"device_type"`
	CountryCode string `json:"country_code"`
	CreatedAt   string `json:"created_at"`
}

type VisitDaily struct {
	Day      string `json:"day"`
	Visits   int64  `json:"visits"`
	Visitors int64  `json:"visitors"`
}
