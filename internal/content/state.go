// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"time"

	"github.com/olegiv/scms-go/internal/model"
)

// State is one consistent batch of site content. A State is never modified
// after it has been published; callers must not mutate its slices.
type State struct {
	Config             model.SiteConfig
	Posts              []model.Post
	Documents          []model.Document
	DocumentCategories []model.DocumentCategory
	GalleryImages      []model.GalleryImage
	GalleryAlbums      []model.GalleryAlbum
	Videos             []model.Video
	Blocks             []model.DisplayBlock
	Menu               []model.MenuItem
	Staff              []model.StaffMember
	Introductions      []model.Introduction
	PostCategories     []model.PostCategory

	// LoadedAt is zero until the first refresh completed.
	LoadedAt time.Time
}

func emptyState() *State {
	return &State{
		Config:             model.DefaultSiteConfig(),
		Posts:              []model.Post{},
		Documents:          []model.Document{},
		DocumentCategories: []model.DocumentCategory{},
		GalleryImages:      []model.GalleryImage{},
		GalleryAlbums:      []model.GalleryAlbum{},
		Videos:             []model.Video{},
		Blocks:             []model.DisplayBlock{},
		Menu:               []model.MenuItem{},
		Staff:              []model.StaffMember{},
		Introductions:      []model.Introduction{},
		PostCategories:     []model.PostCategory{},
	}
}

// Post returns the post summary with the given id.
func (s *State) Post(id int64) (model.Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

// PublishedPosts returns the published posts of category, or of every
// category when category is "".
func (s *State) PublishedPosts(category string) []model.Post {
	out := make([]model.Post, 0, len(s.Posts))
	for _, p := range s.Posts {
		if p.IsPublished() && (category == "" || p.Category == category) {
			out = append(out, p)
		}
	}
	return out
}

// PostCategory returns the post category with the given slug.
func (s *State) PostCategory(slug string) (model.PostCategory, bool) {
	for _, c := range s.PostCategories {
		if c.Slug == slug {
			return c, true
		}
	}
	return model.PostCategory{}, false
}

// DocumentCategory returns the document category with the given slug.
func (s *State) DocumentCategory(slug string) (model.DocumentCategory, bool) {
	for _, c := range s.DocumentCategories {
		if c.Slug == slug {
			return c, true
		}
	}
	return model.DocumentCategory{}, false
}

// DocumentsIn returns the documents of category id.
func (s *State) DocumentsIn(categoryID int64) []model.Document {
	var out []model.Document
	for _, d := range s.Documents {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out
}

// Album returns the gallery album with the given id.
func (s *State) Album(id int64) (model.GalleryAlbum, bool) {
	for _, a := range s.GalleryAlbums {
		if a.ID == id {
			return a, true
		}
	}
	return model.GalleryAlbum{}, false
}

// AlbumImages returns the images of album id.
func (s *State) AlbumImages(albumID int64) []model.GalleryImage {
	var out []model.GalleryImage
	for _, img := range s.GalleryImages {
		if img.AlbumID == albumID {
			out = append(out, img)
		}
	}
	return out
}
