// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
)

// AlbumFormData is the data of the album screen: the album form and, for
// an existing album, its images.
type AlbumFormData struct {
	Album  model.GalleryAlbum
	Images []model.GalleryImage
	IsEdit bool
}

// GalleryHandler handles gallery albums and their images.
type GalleryHandler struct {
	base
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(d Deps) *GalleryHandler {
	return &GalleryHandler{base: newBase(d)}
}

// List renders the albums with their image counts.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	albums, err := h.Repo.ListGalleryAlbums(ctx)
	if err != nil {
		logAndInternalError(w, "failed to list albums", "error", err)
		return
	}
	images, err := h.Repo.ListGalleryImages(ctx)
	if err != nil {
		logAndInternalError(w, "failed to list gallery images", "error", err)
		return
	}

	counts := make(map[int64]int, len(albums))
	for _, img := range images {
		counts[img.AlbumID]++
	}
	summaries := make([]AlbumSummary, 0, len(albums))
	for _, a := range albums {
		summaries = append(summaries, AlbumSummary{GalleryAlbum: a, ImageCount: counts[a.ID]})
	}

	h.render(w, r, http.StatusOK, "admin/gallery", h.adminData(r, router.PageAdminGallery, "Thư viện ảnh", summaries))
}

// NewForm renders an empty album form.
func (h *GalleryHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderAlbum(w, r, AlbumFormData{}, nil)
}

// Create saves a new album and opens it for adding images.
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminGallery) {
		return
	}
	in := albumFromForm(r)
	album, err := h.Repo.CreateGalleryAlbum(r.Context(), in)
	if err != nil {
		h.renderAlbum(w, r, AlbumFormData{Album: in}, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Gallery album created", map[string]any{"album_id": album.ID})
	flashSuccess(w, r, h.Sessions, albumURL(album.ID), msgSaved)
}

// EditForm renders an album with its images.
func (h *GalleryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	album, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminGallery, "album", parseIDParam(r, "id"),
		func(id int64) (model.GalleryAlbum, error) { return h.Repo.GetGalleryAlbum(r.Context(), id) })
	if !ok {
		return
	}
	h.renderAlbum(w, r, AlbumFormData{Album: album, IsEdit: true}, nil)
}

// Update saves an existing album.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminGallery) {
		return
	}
	in := albumFromForm(r)
	in.ID = id
	if _, err := h.Repo.UpdateGalleryAlbum(r.Context(), id, in); err != nil {
		h.renderAlbum(w, r, AlbumFormData{Album: in, IsEdit: true}, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Gallery album updated", map[string]any{"album_id": id})
	flashSuccess(w, r, h.Sessions, albumURL(id), msgSaved)
}

// Delete removes an album together with its images.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "album", redirectAdminGallery, h.Repo.DeleteGalleryAlbum)
}

// AddImage adds an image URL to an album.
// POST /admin/gallery/{id}/images
func (h *GalleryHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	albumID := parseIDParam(r, "id")
	redirect := albumURL(albumID)
	if !parseFormOrRedirect(w, r, h.Sessions, redirect) {
		return
	}

	img, err := h.Repo.AddGalleryImage(r.Context(), model.GalleryImage{
		URL:     r.FormValue("url"),
		Caption: r.FormValue("caption"),
		AlbumID: albumID,
	})
	if err != nil {
		flashError(w, r, h.Sessions, redirect, errorMessage(err))
		return
	}
	h.changed(r, model.EventCategoryContent, "Gallery image added", map[string]any{"album_id": albumID, "image_id": img.ID})
	flashSuccess(w, r, h.Sessions, redirect, "Đã thêm ảnh.")
}

// DeleteImage removes one image of an album.
// POST /admin/gallery/{id}/images/{imageId}/delete
func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	albumID := parseIDParam(r, "id")
	imageID := parseIDParam(r, "imageId")
	redirect := albumURL(albumID)

	if err := h.Repo.DeleteGalleryImage(r.Context(), imageID); err != nil {
		flashError(w, r, h.Sessions, redirect, errorMessage(err))
		return
	}
	h.changed(r, model.EventCategoryContent, "Gallery image deleted", map[string]any{"album_id": albumID, "image_id": imageID})
	flashSuccess(w, r, h.Sessions, redirect, msgDeleted)
}

func (h *GalleryHandler) renderAlbum(w http.ResponseWriter, r *http.Request, data AlbumFormData, err error) {
	title := "Thêm album"
	if data.IsEdit {
		title = data.Album.Title
		images, lerr := h.Repo.ListAlbumImages(r.Context(), data.Album.ID)
		if lerr != nil {
			logAndInternalError(w, "failed to list album images", "error", lerr, "album_id", data.Album.ID)
			return
		}
		data.Images = images
	}
	td := h.adminData(r, router.PageAdminGallery, title, data)
	if err != nil {
		h.renderForm(w, r, "admin/gallery-album", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/gallery-album", td)
}

func albumURL(id int64) string {
	if id <= 0 {
		return redirectAdminGallery
	}
	return fmt.Sprintf("%s/%d", redirectAdminGallery, id)
}

func albumFromForm(r *http.Request) model.GalleryAlbum {
	return model.GalleryAlbum{
		Title:       r.FormValue("title"),
		Description: strings.TrimSpace(r.FormValue("description")),
		Thumbnail:   strings.TrimSpace(r.FormValue("thumbnail")),
		CreatedDate: strings.TrimSpace(r.FormValue("created_date")),
	}
}
