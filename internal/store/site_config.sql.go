package store

import (
	"context"
	"time"
)

const siteConfigColumns = `id, name, slogan, logo_url, banner_url, address, phone, email, hotline,
website, fanpage, map_embed, footer_text, primary_color, meta_title, meta_description,
home_news_count, home_show_program, show_welcome_banner, updated_at`

const getSiteConfig = `-- name: GetSiteConfig :one
SELECT ` + siteConfigColumns + ` FROM site_config WHERE id = 1`

func (q *Queries) GetSiteConfig(ctx context.Context) (SiteConfig, error) {
	row := q.db.QueryRowContext(ctx, getSiteConfig)
	var i SiteConfig
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slogan,
		&i.LogoUrl,
		&i.BannerUrl,
		&i.Address,
		&i.Phone,
		&i.Email,
		&i.Hotline,
		&i.Website,
		&i.Fanpage,
		&i.MapEmbed,
		&i.FooterText,
		&i.PrimaryColor,
		&i.MetaTitle,
		&i.MetaDescription,
		&i.HomeNewsCount,
		&i.HomeShowProgram,
		&i.ShowWelcomeBanner,
		&i.UpdatedAt,
	)
	return i, err
}

// The singleton row is always id 1; a second row cannot exist.
const upsertSiteConfig = `-- name: UpsertSiteConfig :exec
INSERT INTO site_config (id, name, slogan, logo_url, banner_url, address, phone, email, hotline,
    website, fanpage, map_embed, footer_text, primary_color, meta_title, meta_description,
    home_news_count, home_show_program, show_welcome_banner, updated_at)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    slogan = excluded.slogan,
    logo_url = excluded.logo_url,
    banner_url = excluded.banner_url,
    address = excluded.address,
    phone = excluded.phone,
    email = excluded.email,
    hotline = excluded.hotline,
    website = excluded.website,
    fanpage = excluded.fanpage,
    map_embed = excluded.map_embed,
    footer_text = excluded.footer_text,
    primary_color = excluded.primary_color,
    meta_title = excluded.meta_title,
    meta_description = excluded.meta_description,
    home_news_count = excluded.home_news_count,
    home_show_program = excluded.home_show_program,
    show_welcome_banner = excluded.show_welcome_banner,
    updated_at = excluded.updated_at`

type UpsertSiteConfigParams struct {
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

func (q *Queries) UpsertSiteConfig(ctx context.Context, arg UpsertSiteConfigParams) error {
	_, err := q.db.ExecContext(ctx, upsertSiteConfig,
		arg.Name,
		arg.Slogan,
		arg.LogoUrl,
		arg.BannerUrl,
		arg.Address,
		arg.Phone,
		arg.Email,
		arg.Hotline,
		arg.Website,
		arg.Fanpage,
		arg.MapEmbed,
		arg.FooterText,
		arg.PrimaryColor,
		arg.MetaTitle,
		arg.MetaDescription,
		arg.HomeNewsCount,
		arg.HomeShowProgram,
		arg.ShowWelcomeBanner,
		arg.UpdatedAt,
	)
	return err
}
