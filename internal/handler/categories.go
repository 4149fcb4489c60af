// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
)

// CategoryListData is the data of the post category screen. Form holds the
// category being created or edited.
type CategoryListData struct {
	Categories []model.PostCategory
	Form       model.PostCategory
	IsEdit     bool
}

// CategoriesHandler handles the post category screens.
type CategoriesHandler struct {
	base
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(d Deps) *CategoriesHandler {
	return &CategoriesHandler{base: newBase(d)}
}

// List renders the categories with an inline create form.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, model.PostCategory{Color: model.DefaultCategoryColor}, false, nil)
}

// EditForm renders the categories with the edit form of one of them.
func (h *CategoriesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	c, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminCategories, "danh mục", parseIDParam(r, "id"),
		func(id int64) (model.PostCategory, error) { return h.Repo.GetPostCategory(r.Context(), id) })
	if !ok {
		return
	}
	h.renderList(w, r, c, true, nil)
}

// Create saves a new category.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminCategories) {
		return
	}
	in := postCategoryFromForm(r)
	c, err := h.Repo.CreatePostCategory(r.Context(), in)
	if err != nil {
		h.renderList(w, r, in, false, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Post category created", map[string]any{"category_id": c.ID, "slug": c.Slug})
	flashSuccess(w, r, h.Sessions, redirectAdminCategories, msgSaved)
}

// Update saves an existing category.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminCategories) {
		return
	}
	in := postCategoryFromForm(r)
	in.ID = id
	c, err := h.Repo.UpdatePostCategory(r.Context(), id, in)
	if err != nil {
		h.renderList(w, r, in, true, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Post category updated", map[string]any{"category_id": c.ID, "slug": c.Slug})
	flashSuccess(w, r, h.Sessions, redirectAdminCategories, msgSaved)
}

// Delete removes a category.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "danh mục", redirectAdminCategories, h.Repo.DeletePostCategory)
}

// Reorder applies a new category order.
func (h *CategoriesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, "post categories", redirectAdminCategories, h.Repo.ReorderPostCategories)
}

func (h *CategoriesHandler) renderList(w http.ResponseWriter, r *http.Request, form model.PostCategory, isEdit bool, err error) {
	categories, lerr := h.Repo.ListPostCategories(r.Context())
	if lerr != nil {
		logAndInternalError(w, "failed to list post categories", "error", lerr)
		return
	}
	td := h.adminData(r, router.PageAdminCategories, "Danh mục tin", CategoryListData{Categories: categories, Form: form, IsEdit: isEdit})
	if err != nil {
		h.renderForm(w, r, "admin/categories", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/categories", td)
}

func postCategoryFromForm(r *http.Request) model.PostCategory {
	return model.PostCategory{
		Name:  r.FormValue("name"),
		Slug:  strings.TrimSpace(r.FormValue("slug")),
		Color: strings.TrimSpace(r.FormValue("color")),
	}
}
