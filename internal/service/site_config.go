package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// GetSiteConfig returns the stored site configuration, or ErrNotFound when
// the singleton row has not been written yet.
func (r *Repository) GetSiteConfig(ctx context.Context) (model.SiteConfig, error) {
	row, err := r.queries.GetSiteConfig(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SiteConfig{}, fmt.Errorf("site config: %w", ErrNotFound)
		}
		return model.SiteConfig{}, fmt.Errorf("loading site config: %w", err)
	}
	return siteConfigFromRow(row), nil
}

// SaveSiteConfig validates and writes the singleton configuration row.
func (r *Repository) SaveSiteConfig(ctx context.Context, cfg model.SiteConfig) error {
	cfg.Name = strings.TrimSpace(cfg.Name)

	var verr ValidationError
	verr.require("name", cfg.Name, "Tên trường không được để trống")
	if cfg.HomeNewsCount < 0 {
		verr.add("home_news_count", "Số tin trang chủ không được âm")
	}
	if err := verr.err(); err != nil {
		return err
	}
	if cfg.PrimaryColor == "" {
		cfg.PrimaryColor = model.FallbackPrimaryColor
	}

	err := r.queries.UpsertSiteConfig(ctx, store.UpsertSiteConfigParams{
		Name:              cfg.Name,
		Slogan:            cfg.Slogan,
		LogoUrl:           cfg.LogoURL,
		BannerUrl:         cfg.BannerURL,
		Address:           cfg.Address,
		Phone:             cfg.Phone,
		Email:             cfg.Email,
		Hotline:           cfg.Hotline,
		Website:           cfg.Website,
		Fanpage:           cfg.Fanpage,
		MapEmbed:          cfg.MapEmbed,
		FooterText:        cfg.FooterText,
		PrimaryColor:      cfg.PrimaryColor,
		MetaTitle:         cfg.MetaTitle,
		MetaDescription:   cfg.MetaDescription,
		HomeNewsCount:     int64(cfg.HomeNewsCount),
		HomeShowProgram:   cfg.HomeShowProgram,
		ShowWelcomeBanner: cfg.ShowWelcomeBanner,
		UpdatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("saving site config: %w", err)
	}
	return nil
}
