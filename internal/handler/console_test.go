// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/ai"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/service"
)

func TestNewsCreate_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	h := NewNewsHandler(env.deps, nil)
	editor := env.createUser(t, model.RoleEditor)

	form := url.Values{"title": {"  "}, "content": {""}, "status": {model.PostStatusPublished}}
	rec := env.serve(http.HandlerFunc(h.Create), asUser(postForm("/admin/news", form.Encode()), editor))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "flash="+msgCheckForm)
	assert.Contains(t, rec.Body.String(), "title_err=Tiêu đề không được để trống")

	_, total, err := env.repo.ListPosts(context.Background(), service.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "invalid post must not be stored")
}

func TestNewsCreate_RefreshesContent(t *testing.T) {
	env := newTestEnv(t)
	h := NewNewsHandler(env.deps, nil)
	editor := env.createUser(t, model.RoleEditor)

	form := url.Values{
		"title":           {"Hội khỏe Phù Đổng cấp trường"},
		"content":         {"<p>Kết quả thi đấu.</p>"},
		"status":          {model.PostStatusPublished},
		"tags":            {"thể thao, hội khỏe"},
		"attachment_name": {"Kết quả", "Mã độc"},
		"attachment_url":  {"https://drive.google.com/file/d/kq", "javascript:alert(1)"},
	}
	rec := env.serve(http.HandlerFunc(h.Create), asUser(postForm("/admin/news", form.Encode()), editor))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectAdminNews, rec.Header().Get("Location"))
	assert.Equal(t, msgSaved, env.flash(t, rec))

	posts := env.content.Snapshot().PublishedPosts("")
	require.Len(t, posts, 1, "the public snapshot is reloaded after a write")
	assert.Equal(t, "Hội khỏe Phù Đổng cấp trường", posts[0].Title)

	stored, err := env.repo.GetPost(context.Background(), posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"thể thao", "hội khỏe"}, stored.Tags)
	require.Len(t, stored.Attachments, 1, "unsafe attachment links are dropped")
	assert.Equal(t, "https://drive.google.com/file/d/kq", stored.Attachments[0].URL)
}

func TestNewsDraft(t *testing.T) {
	env := newTestEnv(t)

	t.Run("converts markdown", func(t *testing.T) {
		h := NewNewsHandler(env.deps, stubDrafter{text: "**Chào mừng** năm học mới"})
		rec := env.serve(http.HandlerFunc(h.Draft), postJSON("/admin/news/draft", `{"topic":"khai giảng","kind":"news"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "**Chào mừng** năm học mới", resp["text"])
		assert.Contains(t, resp["html"], "<strong>Chào mừng</strong>")
	})

	t.Run("requires a topic", func(t *testing.T) {
		h := NewNewsHandler(env.deps, stubDrafter{text: "x"})
		rec := env.serve(http.HandlerFunc(h.Draft), postJSON("/admin/news/draft", `{"topic":"  "}`))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("without a drafter", func(t *testing.T) {
		h := NewNewsHandler(env.deps, nil)
		rec := env.serve(http.HandlerFunc(h.Draft), postForm("/admin/news/draft", "topic=hoc+tap"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), ai.MsgMissingKey)
	})
}

func TestDocumentCategoryDelete_InUse(t *testing.T) {
	env := newTestEnv(t)
	h := NewDocumentsHandler(env.deps)
	admin := env.createUser(t, model.RoleAdmin)
	ctx := context.Background()

	used, err := env.repo.CreateDocumentCategory(ctx, model.DocumentCategory{Name: "Văn bản chính thức"})
	require.NoError(t, err)
	empty, err := env.repo.CreateDocumentCategory(ctx, model.DocumentCategory{Name: "Lưu trữ"})
	require.NoError(t, err)
	_, err = env.repo.CreateDocument(ctx, model.Document{
		Number:      "01/QĐ",
		Title:       "Quyết định thành lập tổ chuyên môn",
		CategoryID:  used.ID,
		DownloadURL: "https://drive.google.com/file/d/qd",
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/admin/document-categories/{id}/delete", h.DeleteCategory)

	target := "/admin/document-categories/" + strconv.FormatInt(used.ID, 10) + "/delete"
	rec := env.serve(r, asUser(postForm(target, ""), admin))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectAdminDocCategories, rec.Header().Get("Location"))
	assert.Equal(t, "Danh mục vẫn còn văn bản nên không thể xóa.", env.flash(t, rec))

	_, err = env.repo.GetDocumentCategory(ctx, used.ID)
	assert.NoError(t, err, "category with documents must survive")

	target = "/admin/document-categories/" + strconv.FormatInt(empty.ID, 10) + "/delete"
	rec = env.serve(r, asUser(postForm(target, ""), admin))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, msgDeleted, env.flash(t, rec))
	_, err = env.repo.GetDocumentCategory(ctx, empty.ID)
	assert.Error(t, err)
}

func TestStaffReorder_JSON(t *testing.T) {
	env := newTestEnv(t)
	h := NewStaffHandler(env.deps)
	editor := env.createUser(t, model.RoleEditor)
	ctx := context.Background()

	principal, err := env.repo.CreateStaffMember(ctx, model.StaffMember{FullName: "Nguyễn Văn An", Position: "Hiệu trưởng"})
	require.NoError(t, err)
	deputy, err := env.repo.CreateStaffMember(ctx, model.StaffMember{FullName: "Trần Thị Bình", Position: "Phó hiệu trưởng"})
	require.NoError(t, err)

	body := `[{"id":` + strconv.FormatInt(deputy.ID, 10) + `,"order":0},{"id":` + strconv.FormatInt(principal.ID, 10) + `,"order":1}]`
	rec := env.serve(http.HandlerFunc(h.Reorder), asUser(postJSON("/admin/staff/reorder", body), editor))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 2, resp["updated"])

	staff, err := env.repo.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, deputy.ID, staff[0].ID)
	assert.Equal(t, principal.ID, staff[1].ID)

	snapshot := env.content.Snapshot().Staff
	require.Len(t, snapshot, 2)
	assert.Equal(t, deputy.ID, snapshot[0].ID)
}

func TestStaffReorder_BadPayload(t *testing.T) {
	env := newTestEnv(t)
	h := NewStaffHandler(env.deps)

	rec := env.serve(http.HandlerFunc(h.Reorder), postJSON("/admin/staff/reorder", `{"id":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.serve(http.HandlerFunc(h.Reorder), postJSON("/admin/staff/reorder", `[{"id":4242,"order":0}]`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersDelete_RefusesSelf(t *testing.T) {
	env := newTestEnv(t)
	h := NewUsersHandler(env.deps)
	admin := env.createUser(t, model.RoleAdmin)

	r := chi.NewRouter()
	r.Post("/admin/users/{id}/delete", h.Delete)

	rec := env.serve(r, asUser(postForm("/admin/users/"+strconv.FormatInt(admin.ID, 10)+"/delete", ""), admin))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Bạn không thể xóa tài khoản của chính mình.", env.flash(t, rec))

	_, err := env.repo.GetUser(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestConfigUpdate(t *testing.T) {
	env := newTestEnv(t)
	h := NewConfigHandler(env.deps)
	admin := env.createUser(t, model.RoleAdmin)

	form := url.Values{
		"name":            {"Trường THCS Hòa Bình"},
		"home_news_count": {"8"},
		"map_embed":       {`<iframe src="https://www.google.com/maps/embed?pb=xyz" width="600"></iframe>`},
	}
	rec := env.serve(http.HandlerFunc(h.Update), asUser(postForm("/admin/settings", form.Encode()), admin))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cfg, err := env.repo.GetSiteConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Trường THCS Hòa Bình", cfg.Name)
	assert.Equal(t, 8, cfg.HomeNewsCount)
	assert.Equal(t, "https://www.google.com/maps/embed?pb=xyz", cfg.MapEmbed)
	assert.Equal(t, "Trường THCS Hòa Bình", env.content.Snapshot().Config.Name)
}

type stubDrafter struct {
	text string
}

func (s stubDrafter) Draft(context.Context, string, ai.Kind) string {
	return s.text
}
