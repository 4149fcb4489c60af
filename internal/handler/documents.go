// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// DocumentListData is the data of the console document list.
type DocumentListData struct {
	Documents  []model.Document
	Categories []model.DocumentCategory
	CategoryID int64
	names      map[int64]string
}

// CategoryName returns the name of document category id.
func (d DocumentListData) CategoryName(id int64) string {
	return d.names[id]
}

// DocumentFormData is the data of the document form.
type DocumentFormData struct {
	Document   model.Document
	Categories []model.DocumentCategory
	IsEdit     bool
}

// DocCategoryListData is the data of the document category screen.
type DocCategoryListData struct {
	Categories []model.DocumentCategory
	Form       model.DocumentCategory
	IsEdit     bool
}

// DocumentsHandler handles documents and document categories.
type DocumentsHandler struct {
	base
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(d Deps) *DocumentsHandler {
	return &DocumentsHandler{base: newBase(d)}
}

// List renders the documents, optionally filtered by category.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := h.Repo.ListDocuments(ctx)
	if err != nil {
		logAndInternalError(w, "failed to list documents", "error", err)
		return
	}
	categories, err := h.Repo.ListDocumentCategories(ctx)
	if err != nil {
		logAndInternalError(w, "failed to list document categories", "error", err)
		return
	}

	data := DocumentListData{
		Categories: categories,
		CategoryID: util.ParseInt64(r.URL.Query().Get("category")),
		names:      make(map[int64]string, len(categories)),
	}
	for _, c := range categories {
		data.names[c.ID] = c.Name
	}
	for _, d := range docs {
		if data.CategoryID == 0 || d.CategoryID == data.CategoryID {
			data.Documents = append(data.Documents, d)
		}
	}

	h.render(w, r, http.StatusOK, "admin/documents", h.adminData(r, router.PageAdminDocs, "Văn bản", data))
}

// NewForm renders an empty document form.
func (h *DocumentsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	doc := model.Document{
		Date:       time.Now().Format("2006-01-02"),
		CategoryID: util.ParseInt64(r.URL.Query().Get("category")),
	}
	h.renderDocumentForm(w, r, doc, false, nil)
}

// Create saves a new document.
func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminDocuments) {
		return
	}
	in := documentFromForm(r)
	doc, err := h.Repo.CreateDocument(r.Context(), in)
	if err != nil {
		h.renderDocumentForm(w, r, in, false, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Document created", map[string]any{"document_id": doc.ID, "number": doc.Number})
	flashSuccess(w, r, h.Sessions, redirectAdminDocuments, msgSaved)
}

// EditForm renders the form of an existing document.
func (h *DocumentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminDocuments, "văn bản", parseIDParam(r, "id"),
		func(id int64) (model.Document, error) { return h.Repo.GetDocument(r.Context(), id) })
	if !ok {
		return
	}
	h.renderDocumentForm(w, r, doc, true, nil)
}

// Update saves an existing document.
func (h *DocumentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminDocuments) {
		return
	}
	in := documentFromForm(r)
	in.ID = id
	doc, err := h.Repo.UpdateDocument(r.Context(), id, in)
	if err != nil {
		h.renderDocumentForm(w, r, in, true, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Document updated", map[string]any{"document_id": doc.ID, "number": doc.Number})
	flashSuccess(w, r, h.Sessions, redirectAdminDocuments, msgSaved)
}

// Delete removes a document.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "văn bản", redirectAdminDocuments, h.Repo.DeleteDocument)
}

// Categories renders the document categories with an inline create form.
func (h *DocumentsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, model.DocumentCategory{}, false, nil)
}

// EditCategoryForm renders the document categories with the edit form of
// one of them.
func (h *DocumentsHandler) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	c, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminDocCategories, "danh mục văn bản", parseIDParam(r, "id"),
		func(id int64) (model.DocumentCategory, error) { return h.Repo.GetDocumentCategory(r.Context(), id) })
	if !ok {
		return
	}
	h.renderCategories(w, r, c, true, nil)
}

// CreateCategory saves a new document category.
func (h *DocumentsHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminDocCategories) {
		return
	}
	in := docCategoryFromForm(r)
	c, err := h.Repo.CreateDocumentCategory(r.Context(), in)
	if err != nil {
		h.renderCategories(w, r, in, false, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Document category created", map[string]any{"category_id": c.ID, "slug": c.Slug})
	flashSuccess(w, r, h.Sessions, redirectAdminDocCategories, msgSaved)
}

// UpdateCategory saves an existing document category.
func (h *DocumentsHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminDocCategories) {
		return
	}
	in := docCategoryFromForm(r)
	in.ID = id
	c, err := h.Repo.UpdateDocumentCategory(r.Context(), id, in)
	if err != nil {
		h.renderCategories(w, r, in, true, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Document category updated", map[string]any{"category_id": c.ID, "slug": c.Slug})
	flashSuccess(w, r, h.Sessions, redirectAdminDocCategories, msgSaved)
}

// DeleteCategory removes a document category. It is refused while any
// document still belongs to it.
func (h *DocumentsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "danh mục văn bản", redirectAdminDocCategories, h.Repo.DeleteDocumentCategory)
}

// ReorderCategories applies a new document category order.
func (h *DocumentsHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, "document categories", redirectAdminDocCategories, h.Repo.ReorderDocumentCategories)
}

func (h *DocumentsHandler) renderDocumentForm(w http.ResponseWriter, r *http.Request, doc model.Document, isEdit bool, err error) {
	categories, lerr := h.Repo.ListDocumentCategories(r.Context())
	if lerr != nil {
		logAndInternalError(w, "failed to list document categories", "error", lerr)
		return
	}
	title := "Thêm văn bản"
	if isEdit {
		title = "Sửa văn bản"
	}
	td := h.adminData(r, router.PageAdminDocs, title, DocumentFormData{Document: doc, Categories: categories, IsEdit: isEdit})
	if err != nil {
		h.renderForm(w, r, "admin/document-form", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/document-form", td)
}

func (h *DocumentsHandler) renderCategories(w http.ResponseWriter, r *http.Request, form model.DocumentCategory, isEdit bool, err error) {
	categories, lerr := h.Repo.ListDocumentCategories(r.Context())
	if lerr != nil {
		logAndInternalError(w, "failed to list document categories", "error", lerr)
		return
	}
	td := h.adminData(r, router.PageAdminDocs, "Danh mục văn bản", DocCategoryListData{Categories: categories, Form: form, IsEdit: isEdit})
	if err != nil {
		h.renderForm(w, r, "admin/document-categories", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/document-categories", td)
}

func documentFromForm(r *http.Request) model.Document {
	return model.Document{
		Number:      r.FormValue("number"),
		Title:       r.FormValue("title"),
		Date:        strings.TrimSpace(r.FormValue("date")),
		CategoryID:  util.ParseInt64(r.FormValue("category_id")),
		DownloadURL: r.FormValue("download_url"),
	}
}

func docCategoryFromForm(r *http.Request) model.DocumentCategory {
	return model.DocumentCategory{
		Name:        r.FormValue("name"),
		Slug:        strings.TrimSpace(r.FormValue("slug")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}
