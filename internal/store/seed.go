// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/util"
)

// Default admin credentials, used when SeedOptions leaves them empty.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Quản trị viên"
)

// SeedOptions configures the initial admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Seed creates the initial admin, the site configuration row, and the
// default categories, menu and display blocks. Each part is skipped when
// its table already has data, so Seed is safe to run on every start.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)

	steps := []struct {
		name string
		fn   func(context.Context, *Queries) error
	}{
		{"admin user", func(ctx context.Context, q *Queries) error { return seedAdmin(ctx, q, opts) }},
		{"site config", seedSiteConfig},
		{"post categories", seedPostCategories},
		{"document categories", seedDocumentCategories},
		{"menu items", seedMenuItems},
		{"display blocks", seedDisplayBlocks},
	}
	for _, step := range steps {
		if err := step.fn(ctx, queries); err != nil {
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, queries *Queries, opts SeedOptions) error {
	admins, err := queries.CountUsersByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if admins > 0 {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}

	email := opts.AdminEmail
	if email == "" {
		email = DefaultAdminEmail
	}
	password := opts.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        email,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	attrs := []any{"id", user.ID, "email", user.Email}
	if opts.AdminPassword == "" {
		attrs = append(attrs, "password", DefaultAdminPassword)
	}
	slog.Info("created admin user", attrs...)
	return nil
}

func seedSiteConfig(ctx context.Context, queries *Queries) error {
	_, err := queries.GetSiteConfig(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading site config: %w", err)
	}

	cfg := model.DefaultSiteConfig()
	return queries.UpsertSiteConfig(ctx, UpsertSiteConfigParams{
		Name:            cfg.Name,
		Slogan:          cfg.Slogan,
		Address:         cfg.Address,
		PrimaryColor:    cfg.PrimaryColor,
		MetaTitle:       cfg.MetaTitle,
		FooterText:      "© " + cfg.Name,
		HomeNewsCount:   int64(cfg.HomeNewsCount),
		HomeShowProgram: cfg.HomeShowProgram,
		UpdatedAt:       time.Now(),
	})
}

func seedPostCategories(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListPostCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []CreatePostCategoryParams{
		{Name: "Tin Tức & Sự kiện", Slug: model.PostCategoryNews, Color: "#1d4ed8", OrderIndex: 1},
		{Name: "Thông báo", Slug: model.PostCategoryAnnouncement, Color: "#dc2626", OrderIndex: 2},
		{Name: "Hoạt động phong trào", Slug: model.PostCategoryActivity, Color: "#16a34a", OrderIndex: 3},
		{Name: "Hoạt động chuyên môn", Slug: model.PostCategoryProfessional, Color: "#9333ea", OrderIndex: 4},
	}
	for _, c := range defaults {
		if _, err := queries.CreatePostCategory(ctx, c); err != nil {
			return fmt.Errorf("creating post category %s: %w", c.Slug, err)
		}
	}
	slog.Info("seeded post categories", "count", len(defaults))
	return nil
}

func seedDocumentCategories(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListDocumentCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []CreateDocumentCategoryParams{
		{Name: "Văn bản chính thức", Slug: model.DefaultDocumentCategorySlug, OrderIndex: 1},
		{Name: "Kế hoạch", Slug: "plan", OrderIndex: 2},
		{Name: "Biểu mẫu", Slug: "form", OrderIndex: 3},
	}
	for _, c := range defaults {
		if _, err := queries.CreateDocumentCategory(ctx, c); err != nil {
			return fmt.Errorf("creating document category %s: %w", c.Slug, err)
		}
	}
	slog.Info("seeded document categories", "count", len(defaults))
	return nil
}

func seedMenuItems(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListMenuItems(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []CreateMenuItemParams{
		{Label: "Trang chủ", Path: "home", OrderIndex: 1},
		{Label: "Giới thiệu", Path: "intro", OrderIndex: 2},
		{Label: "Tin tức", Path: "news", OrderIndex: 3},
		{Label: "Văn bản", Path: "documents", OrderIndex: 4},
		{Label: "Đội ngũ", Path: "staff", OrderIndex: 5},
		{Label: "Thư viện ảnh", Path: "gallery", OrderIndex: 6},
		{Label: "Tài nguyên", Path: "resources", OrderIndex: 7},
		{Label: "Liên hệ", Path: "contact", OrderIndex: 8},
	}
	for _, m := range defaults {
		if _, err := queries.CreateMenuItem(ctx, m); err != nil {
			return fmt.Errorf("creating menu item %s: %w", m.Label, err)
		}
	}
	slog.Info("seeded menu items", "count", len(defaults))
	return nil
}

func seedDisplayBlocks(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListDisplayBlocks(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	source := util.NullStringFromValue
	defaults := []CreateDisplayBlockParams{
		{Name: "Tin nổi bật", Position: model.BlockPositionMain, Type: model.BlockTypeHero, OrderIndex: 1, ItemCount: 3, TargetPage: model.BlockTargetHome, Source: source(model.BlockSourceFeatured)},
		{Name: "Tin tức mới", Position: model.BlockPositionMain, Type: model.BlockTypeGrid, OrderIndex: 2, ItemCount: 6, TargetPage: model.BlockTargetAll, Source: source(model.BlockSourceAll)},
		{Name: "Thông báo", Position: model.BlockPositionMain, Type: model.BlockTypeList, OrderIndex: 3, ItemCount: 5, TargetPage: model.BlockTargetHome, Source: source(model.PostCategoryAnnouncement)},
		{Name: "Thông báo mới", Position: model.BlockPositionSidebar, Type: model.BlockTypeList, OrderIndex: 1, ItemCount: 5, TargetPage: model.BlockTargetAll, Source: source(model.PostCategoryAnnouncement)},
		{Name: "Văn bản mới", Position: model.BlockPositionSidebar, Type: model.BlockTypeDocs, OrderIndex: 2, ItemCount: 5, TargetPage: model.BlockTargetAll, Source: source(model.BlockSourceAll)},
		{Name: "Thống kê truy cập", Position: model.BlockPositionSidebar, Type: model.BlockTypeStats, OrderIndex: 3, TargetPage: model.BlockTargetAll, Source: source(model.BlockSourceAll)},
	}
	for _, b := range defaults {
		b.IsVisible = true
		if _, err := queries.CreateDisplayBlock(ctx, b); err != nil {
			return fmt.Errorf("creating display block %s: %w", b.Name, err)
		}
	}
	slog.Info("seeded display blocks", "count", len(defaults))
	return nil
}
