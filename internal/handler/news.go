// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/ai"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/util"
)

// PostsPerPage is the number of posts per console list page.
const PostsPerPage = 20

// PostListData is the data of the console post list.
type PostListData struct {
	Posts      []model.Post
	Categories []model.PostCategory
	Status     string
	Category   string
	Pagination render.Pagination
}

// PostFormData is the data of the post form.
type PostFormData struct {
	Post       model.Post
	IsEdit     bool
	Tags       string
	Categories []model.PostCategory
	Blocks     []model.DisplayBlock
	AIEnabled  bool
}

// draftRequest is the body of an AI draft request.
type draftRequest struct {
	Topic string `json:"topic"`
	Kind  string `json:"kind"`
}

// HasBlock reports whether the post is pinned to block id.
func (d PostFormData) HasBlock(id int64) bool {
	return slices.Contains(d.Post.BlockIDs, id)
}

// NewsHandler handles the console post screens.
type NewsHandler struct {
	base
	drafter ai.Drafter
}

// NewNewsHandler creates a new NewsHandler. A nil drafter disables drafts.
func NewNewsHandler(d Deps, drafter ai.Drafter) *NewsHandler {
	return &NewsHandler{base: newBase(d), drafter: drafter}
}

// List renders the paginated post list.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.PostFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Limit:    PostsPerPage,
	}
	current := util.ParseIntDefault(q.Get("p"), 1)
	if current < 1 {
		current = 1
	}
	filter.Offset = (current - 1) * PostsPerPage

	posts, total, err := h.Repo.ListPosts(r.Context(), filter)
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	data := PostListData{
		Posts:      posts,
		Categories: h.Content.Snapshot().PostCategories,
		Status:     filter.Status,
		Category:   filter.Category,
		Pagination: render.BuildPagination(current, total, PostsPerPage, redirectAdminNews, q),
	}
	h.render(w, r, http.StatusOK, "admin/news", h.adminData(r, router.PageAdminNews, "Tin tức", data))
}

// NewForm renders an empty post form.
func (h *NewsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	post := model.Post{
		Status: model.PostStatusDraft,
		Date:   time.Now().Format("2006-01-02"),
	}
	if user := middleware.GetUser(r); user != nil {
		post.Author = user.Name
	}
	h.renderPostForm(w, r, http.StatusOK, h.formData(post, false), nil)
}

// Create saves a new post.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminNews) {
		return
	}
	in := postFromForm(r)

	post, err := h.Repo.CreatePost(r.Context(), in)
	if err != nil {
		h.renderPostForm(w, r, 0, h.formData(in, false), err)
		return
	}

	h.changed(r, model.EventCategoryContent, "Post created", map[string]any{"post_id": post.ID, "title": post.Title})
	flashSuccess(w, r, h.Sessions, redirectAdminNews, msgSaved)
}

// EditForm renders the form of an existing post.
func (h *NewsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminNews, "bài viết", parseIDParam(r, "id"),
		func(id int64) (model.Post, error) { return h.Repo.GetPost(r.Context(), id) })
	if !ok {
		return
	}
	h.renderPostForm(w, r, http.StatusOK, h.formData(post, true), nil)
}

// Update saves an existing post.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminNews) {
		return
	}
	in := postFromForm(r)
	in.ID = id

	post, err := h.Repo.UpdatePost(r.Context(), id, in)
	if err != nil {
		h.renderPostForm(w, r, 0, h.formData(in, true), err)
		return
	}

	h.changed(r, model.EventCategoryContent, "Post updated", map[string]any{"post_id": post.ID, "title": post.Title})
	flashSuccess(w, r, h.Sessions, redirectAdminNews, msgSaved)
}

// Delete removes a post.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "bài viết", redirectAdminNews, h.Repo.DeletePost)
}

// Draft generates post content for a topic and returns it as sanitized HTML.
// POST /admin/news/draft
func (h *NewsHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if wantsJSON(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidForm)
			return
		}
	} else {
		req.Topic = r.FormValue("topic")
		req.Kind = r.FormValue("kind")
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "Vui lòng nhập chủ đề.")
		return
	}
	if h.drafter == nil {
		writeJSONSuccess(w, map[string]any{"text": ai.MsgMissingKey, "html": ai.MsgMissingKey})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ai.DefaultTimeout)
	defer cancel()
	text := h.drafter.Draft(ctx, req.Topic, ai.ParseKind(req.Kind))

	html, err := util.MarkdownToHTML(text)
	if err != nil {
		h.Logger.Warn("failed to convert draft", "error", err)
		html = util.SanitizeHTML(text)
	}
	writeJSONSuccess(w, map[string]any{"text": text, "html": html})
}

func (h *NewsHandler) formData(post model.Post, isEdit bool) PostFormData {
	state := h.Content.Snapshot()
	data := PostFormData{
		Post:       post,
		IsEdit:     isEdit,
		Tags:       strings.Join(post.Tags, ", "),
		Categories: state.PostCategories,
		Blocks:     state.Blocks,
	}
	if e, ok := h.drafter.(interface{ Enabled() bool }); ok {
		data.AIEnabled = e.Enabled()
	}
	return data
}

// renderPostForm renders the post form. A non-nil err re-renders it after
// a failed save.
func (h *NewsHandler) renderPostForm(w http.ResponseWriter, r *http.Request, status int, data PostFormData, err error) {
	title := "Thêm bài viết"
	if data.IsEdit {
		title = "Sửa bài viết"
	}
	td := h.adminData(r, router.PageAdminNews, title, data)
	if err != nil {
		h.renderForm(w, r, "admin/news-form", td, err)
		return
	}
	h.render(w, r, status, "admin/news-form", td)
}

// postFromForm reads a post from a parsed form. Attachments come as
// parallel attachment_name and attachment_url fields.
func postFromForm(r *http.Request) model.Post {
	p := model.Post{
		Title:        r.FormValue("title"),
		Slug:         strings.TrimSpace(r.FormValue("slug")),
		Summary:      strings.TrimSpace(r.FormValue("summary")),
		Content:      r.FormValue("content"),
		Thumbnail:    strings.TrimSpace(r.FormValue("thumbnail")),
		ImageCaption: strings.TrimSpace(r.FormValue("image_caption")),
		Author:       strings.TrimSpace(r.FormValue("author")),
		Date:         strings.TrimSpace(r.FormValue("date")),
		Category:     r.FormValue("category"),
		Status:       r.FormValue("status"),
		IsFeatured:   util.ParseCheckbox(r.FormValue("is_featured")),
		ShowOnHome:   util.ParseCheckbox(r.FormValue("show_on_home")),
		Tags:         service.ParseTags(r.FormValue("tags")),
	}

	for _, v := range r.Form["block_ids"] {
		if id := util.ParseInt64(v); id > 0 {
			p.BlockIDs = append(p.BlockIDs, id)
		}
	}

	names, urls := r.Form["attachment_name"], r.Form["attachment_url"]
	for i, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || !util.IsSafeLink(u) {
			continue
		}
		name := u
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			name = strings.TrimSpace(names[i])
		}
		p.Attachments = append(p.Attachments, model.Attachment{Name: name, URL: u})
	}
	return p
}
