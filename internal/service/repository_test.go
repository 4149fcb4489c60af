package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/testutil"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(testutil.TestSeededDB(t), 0)
}

func validPost(title string) model.Post {
	return model.Post{
		Title:    title,
		Content:  "<p>Nội dung</p>",
		Category: model.PostCategoryNews,
		Status:   model.PostStatusPublished,
		Date:     "2024-09-05",
	}
}

func TestCreatePost_GeneratesVietnameseSlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, validPost("Đại hội Đoàn trường năm học mới"))
	require.NoError(t, err)
	assert.Equal(t, "dai-hoi-doan-truong-nam-hoc-moi", post.Slug)

	second, err := repo.CreatePost(ctx, validPost("Đại hội Đoàn trường năm học mới"))
	require.NoError(t, err)
	assert.Equal(t, "dai-hoi-doan-truong-nam-hoc-moi-2", second.Slug)
}

func TestCreatePost_ExplicitSlugTaken(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	in := validPost("Khai giảng")
	in.Slug = "khai-giang"
	_, err := repo.CreatePost(ctx, in)
	require.NoError(t, err)

	_, err = repo.CreatePost(ctx, in)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreatePost_Validation(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreatePost(context.Background(), model.Post{Status: "archived"})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "content")
	assert.Contains(t, verr.Fields, "status")
}

func TestCreatePost_Defaults(t *testing.T) {
	repo := newTestRepository(t)

	in := validPost("Thông báo nghỉ lễ")
	in.Status = ""
	in.Date = ""
	in.Tags = []string{" lễ ", "", "lễ", "nghỉ"}
	post, err := repo.CreatePost(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.NotEmpty(t, post.Date)
	assert.Equal(t, []string{"lễ", "nghỉ"}, post.Tags)
	assert.Empty(t, post.BlockIDs)
}

func TestPost_JSONColumnsAndSummaries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	in := validPost("Kế hoạch thi học kỳ")
	in.BlockIDs = []int64{2, 5}
	in.Attachments = []model.Attachment{{Name: "Lịch thi", URL: "https://example.com/lich.pdf"}}
	created, err := repo.CreatePost(ctx, in)
	require.NoError(t, err)

	full, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5}, full.BlockIDs)
	assert.Equal(t, in.Attachments, full.Attachments)
	assert.True(t, full.HasBody())

	summaries, err := repo.ListPostSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].HasBody(), "summaries must not carry the body")
	assert.Empty(t, summaries[0].Attachments)
}

func TestListPostSummaries_Limit(t *testing.T) {
	repo := NewRepository(testutil.TestSeededDB(t), 2)
	ctx := context.Background()
	for _, title := range []string{"Một", "Hai", "Ba"} {
		_, err := repo.CreatePost(ctx, validPost(title))
		require.NoError(t, err)
	}

	summaries, err := repo.ListPostSummaries(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestUpdatePost_Explicit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.UpdatePost(ctx, 999, validPost("Không tồn tại"))
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := repo.CreatePost(ctx, validPost("Bản nháp"))
	require.NoError(t, err)

	in := validPost("Bản chính thức")
	in.Slug = created.Slug
	updated, err := repo.UpdatePost(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Bản chính thức", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug, "keeping its own slug is not a conflict")
}

func TestIncrementPostViews(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, validPost("Tin mới"))
	require.NoError(t, err)
	require.NoError(t, repo.IncrementPostViews(ctx, created.ID))
	require.NoError(t, repo.IncrementPostViews(ctx, created.ID))

	got, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	assert.ErrorIs(t, repo.IncrementPostViews(ctx, 424242), ErrNotFound)
}

func TestPostCategory_SlugRules(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cat, err := repo.CreatePostCategory(ctx, model.PostCategory{Name: "Gương sáng học đường"})
	require.NoError(t, err)
	assert.Equal(t, "guong-sang-hoc-duong", cat.Slug)
	assert.Equal(t, 5, cat.OrderIndex, "appended after the four seeded categories")

	_, err = repo.CreatePostCategory(ctx, model.PostCategory{Name: "Tin tức", Slug: model.PostCategoryNews})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = repo.CreatePostCategory(ctx, model.PostCategory{Name: "Sai", Slug: "Có Dấu"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.CreatePostCategory(ctx, model.PostCategory{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePostCategory_RenamesPosts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cat, err := repo.CreatePostCategory(ctx, model.PostCategory{Name: "Ngoại khóa", Slug: "ngoai-khoa"})
	require.NoError(t, err)
	in := validPost("Dã ngoại")
	in.Category = "ngoai-khoa"
	post, err := repo.CreatePost(ctx, in)
	require.NoError(t, err)

	_, err = repo.UpdatePostCategory(ctx, cat.ID, model.PostCategory{Name: "Ngoại khóa", Slug: "hoat-dong-ngoai-khoa"})
	require.NoError(t, err)

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hoat-dong-ngoai-khoa", got.Category)
}

func TestDeleteDocumentCategory_RefusedWhenInUse(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cats, err := repo.ListDocumentCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	official := cats[0]

	_, err = repo.CreateDocument(ctx, model.Document{
		Number:      "12/QĐ-THCS",
		Title:       "Quyết định thành lập tổ chuyên môn",
		CategoryID:  official.ID,
		DownloadURL: "https://example.com/qd12.pdf",
	})
	require.NoError(t, err)

	err = repo.DeleteDocumentCategory(ctx, official.ID)
	require.ErrorIs(t, err, ErrCategoryInUse)

	after, err := repo.ListDocumentCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(cats), "no category may be deleted")

	empty := cats[len(cats)-1]
	require.NoError(t, repo.DeleteDocumentCategory(ctx, empty.ID))
	assert.ErrorIs(t, repo.DeleteDocumentCategory(ctx, empty.ID), ErrNotFound)
}

func TestCreateDocument_Validation(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreateDocument(context.Background(), model.Document{CategoryID: 9999})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"title", "number", "download_url", "category_id"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestReorder_AllOrNothing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	items, err := repo.ListMenuItems(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), 2)

	err = repo.ReorderMenuItems(ctx, []model.OrderUpdate{
		{ID: items[0].ID, Order: 50},
		{ID: 987654, Order: 51},
	})
	require.ErrorIs(t, err, ErrNotFound)

	unchanged, err := repo.GetMenuItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].OrderIndex, unchanged.OrderIndex, "failed batch must roll back")

	require.NoError(t, repo.ReorderMenuItems(ctx, []model.OrderUpdate{
		{ID: items[0].ID, Order: 2},
		{ID: items[1].ID, Order: 1},
	}))
	reordered, err := repo.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items[1].ID, reordered[0].ID)
}

func TestDisplayBlock_CreateAppendsToPosition(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	block, err := repo.CreateDisplayBlock(ctx, model.DisplayBlock{
		Name:       "Lời chào",
		Position:   model.BlockPositionSidebar,
		Type:       model.BlockTypeHTML,
		IsVisible:  true,
		TargetPage: model.BlockTargetHome,
		Content:    model.HTMLContent{Markup: "<p>Xin chào</p>"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, block.OrderIndex, "three seeded sidebar blocks precede it")

	got, err := repo.GetDisplayBlock(ctx, block.ID)
	require.NoError(t, err)
	hc, ok := got.HTML()
	require.True(t, ok)
	assert.Equal(t, "<p>Xin chào</p>", hc.Markup)

	_, err = repo.CreateDisplayBlock(ctx, model.DisplayBlock{
		Name:     "Sai",
		Position: model.BlockPositionMain,
		Type:     model.BlockTypeGrid,
		Content:  model.HTMLContent{Markup: "<b>x</b>"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMoveBlock(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	mainBlocks := func() []int64 {
		blocks, err := repo.ListDisplayBlocks(ctx)
		require.NoError(t, err)
		var ids []int64
		for _, b := range blocks {
			if b.Position == model.BlockPositionMain {
				ids = append(ids, b.ID)
			}
		}
		return ids
	}

	before := mainBlocks()
	require.Len(t, before, 3)

	require.NoError(t, repo.MoveBlock(ctx, before[2], MoveUp))
	assert.Equal(t, []int64{before[0], before[2], before[1]}, mainBlocks())

	require.NoError(t, repo.MoveBlock(ctx, before[0], MoveUp), "moving the first block up is a no-op")
	assert.Equal(t, []int64{before[0], before[2], before[1]}, mainBlocks())

	for i, id := range mainBlocks() {
		b, err := repo.GetDisplayBlock(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i+1, b.OrderIndex)
	}

	assert.ErrorIs(t, repo.MoveBlock(ctx, 4242, MoveDown), ErrNotFound)
	assert.ErrorIs(t, repo.MoveBlock(ctx, before[0], 3), ErrValidation)
}

func TestCreateVideo_AcceptsURL(t *testing.T) {
	repo := newTestRepository(t)

	video, err := repo.CreateVideo(context.Background(), model.Video{
		Title:     "Lễ khai giảng",
		YoutubeID: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", video.YoutubeID)

	_, err = repo.CreateVideo(context.Background(), model.Video{Title: "Sai", YoutubeID: "https://vimeo.com/1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateMenuItem_PathValidation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.CreateMenuItem(ctx, model.MenuItem{Label: "Tin", Path: "news"})
	assert.NoError(t, err)
	_, err = repo.CreateMenuItem(ctx, model.MenuItem{Label: "Sở GD", Path: "https://example.gov.vn"})
	assert.NoError(t, err)
	_, err = repo.CreateMenuItem(ctx, model.MenuItem{Label: "Xấu", Path: "javascript:alert(1)"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSiteConfig_SaveAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cfg, err := repo.GetSiteConfig(ctx)
	require.NoError(t, err)
	cfg.Hotline = "0987 654 321"
	cfg.ShowWelcomeBanner = true
	require.NoError(t, repo.SaveSiteConfig(ctx, cfg))

	got, err := repo.GetSiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0987 654 321", got.Hotline)
	assert.True(t, got.ShowWelcomeBanner)

	cfg.Name = ""
	assert.ErrorIs(t, repo.SaveSiteConfig(ctx, cfg), ErrValidation)
}

func TestGetSiteConfig_Missing(t *testing.T) {
	repo := NewRepository(testutil.TestMemoryDB(t), 0)
	_, err := repo.GetSiteConfig(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_LastAdminProtected(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	admin, err := repo.Authenticate(ctx, store.DefaultAdminEmail, store.DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, admin.LastLoginAt.Valid)

	_, err = repo.Authenticate(ctx, store.DefaultAdminEmail, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = repo.Authenticate(ctx, "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.ErrorIs(t, repo.DeleteUser(ctx, admin.ID), ErrLastAdmin)
	_, err = repo.UpdateUser(ctx, admin.ID, UserInput{Email: admin.Email, Name: admin.Name, Role: model.RoleEditor})
	assert.ErrorIs(t, err, ErrLastAdmin)

	editor, err := repo.CreateUser(ctx, UserInput{Email: "GV@Example.com", Name: "Giáo viên", Role: model.RoleEditor, Password: "matkhau123"})
	require.NoError(t, err)
	assert.Equal(t, "gv@example.com", editor.Email)

	_, err = repo.CreateUser(ctx, UserInput{Email: "gv@example.com", Name: "Trùng", Role: model.RoleEditor, Password: "matkhau123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Authenticate(ctx, "gv@example.com", "matkhau123")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteUser(ctx, editor.ID))
}
