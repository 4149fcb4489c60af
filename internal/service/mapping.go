package service

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// encodeJSON marshals v, falling back to fallback on error.
func encodeJSON(v any, fallback string) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}

// decodeJSON unmarshals s into a fresh T. Malformed or empty input yields
// the zero value.
func decodeJSON[T any](s string) T {
	var v T
	if strings.TrimSpace(s) == "" {
		return v
	}
	_ = json.Unmarshal([]byte(s), &v)
	return v
}

func postFromRow(p store.Post) model.Post {
	post := model.Post{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Summary:      p.Summary,
		Content:      p.Content,
		Thumbnail:    p.Thumbnail,
		ImageCaption: p.ImageCaption,
		Author:       p.Author,
		Date:         p.Date,
		Category:     p.Category,
		Views:        p.Views,
		Status:       p.Status,
		IsFeatured:   p.IsFeatured,
		ShowOnHome:   p.ShowOnHome,
		BlockIDs:     decodeJSON[[]int64](p.BlockIds),
		Tags:         decodeJSON[[]string](p.Tags),
		Attachments:  decodeJSON[[]model.Attachment](p.Attachments),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if post.BlockIDs == nil {
		post.BlockIDs = []int64{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post
}

func postCategoryFromRow(c store.PostCategory) model.PostCategory {
	return model.PostCategory{
		ID:         c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
		Color:      c.Color,
		OrderIndex: int(c.OrderIndex),
	}
}

func documentFromRow(d store.Document) model.Document {
	return model.Document{
		ID:          d.ID,
		Number:      d.Number,
		Title:       d.Title,
		Date:        d.Date,
		CategoryID:  d.CategoryID,
		DownloadURL: d.DownloadUrl,
		CreatedAt:   d.CreatedAt,
	}
}

func documentCategoryFromRow(c store.DocumentCategory) model.DocumentCategory {
	return model.DocumentCategory{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		OrderIndex:  int(c.OrderIndex),
	}
}

func galleryAlbumFromRow(a store.GalleryAlbum) model.GalleryAlbum {
	return model.GalleryAlbum{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Thumbnail:   a.Thumbnail,
		CreatedDate: a.CreatedDate,
	}
}

func galleryImageFromRow(i store.GalleryImage) model.GalleryImage {
	return model.GalleryImage{
		ID:      i.ID,
		URL:     i.Url,
		Caption: i.Caption,
		AlbumID: i.AlbumID,
	}
}

func videoFromRow(v store.Video) model.Video {
	return model.Video{
		ID:          v.ID,
		Title:       v.Title,
		YoutubeID:   v.YoutubeID,
		Description: v.Description,
		OrderIndex:  int(v.OrderIndex),
		CreatedAt:   v.CreatedAt,
	}
}

func staffFromRow(s store.StaffMember) model.StaffMember {
	return model.StaffMember{
		ID:         s.ID,
		FullName:   s.FullName,
		Position:   s.Position,
		PartyDate:  s.PartyDate,
		Email:      s.Email,
		AvatarURL:  s.AvatarUrl,
		OrderIndex: int(s.OrderIndex),
	}
}

func introductionFromRow(i store.Introduction) model.Introduction {
	return model.Introduction{
		ID:         i.ID,
		Title:      i.Title,
		Slug:       i.Slug,
		Content:    i.Content,
		ImageURL:   i.ImageUrl,
		OrderIndex: int(i.OrderIndex),
		IsVisible:  i.IsVisible,
	}
}

func menuItemFromRow(m store.MenuItem) model.MenuItem {
	return model.MenuItem{
		ID:         m.ID,
		Label:      m.Label,
		Path:       m.Path,
		OrderIndex: int(m.OrderIndex),
	}
}

func displayBlockFromRow(b store.DisplayBlock) model.DisplayBlock {
	return model.DisplayBlock{
		ID:         b.ID,
		Name:       b.Name,
		Position:   b.Position,
		Type:       b.Type,
		OrderIndex: int(b.OrderIndex),
		IsVisible:  b.IsVisible,
		TargetPage: b.TargetPage,
		Content:    model.NewBlockContent(b.Type, b.HtmlContent.String, b.Source.String, int(b.ItemCount)),
	}
}

// blockColumns splits block content into the html_content, source and
// item_count columns. Exactly one of the nullable columns is set.
func blockColumns(c model.BlockContent) (htmlContent, source sql.NullString, itemCount int64) {
	switch v := c.(type) {
	case model.HTMLContent:
		return sql.NullString{String: v.Markup, Valid: true}, sql.NullString{}, 0
	case model.FeedContent:
		src := v.Source
		if src == "" {
			src = model.BlockSourceAll
		}
		return sql.NullString{}, sql.NullString{String: src, Valid: true}, int64(v.ItemCount)
	}
	return sql.NullString{}, sql.NullString{}, 0
}

func siteConfigFromRow(c store.SiteConfig) model.SiteConfig {
	return model.SiteConfig{
		Name:              c.Name,
		Slogan:            c.Slogan,
		LogoURL:           c.LogoUrl,
		BannerURL:         c.BannerUrl,
		Address:           c.Address,
		Phone:             c.Phone,
		Email:             c.Email,
		Hotline:           c.Hotline,
		Website:           c.Website,
		Fanpage:           c.Fanpage,
		MapEmbed:          c.MapEmbed,
		FooterText:        c.FooterText,
		PrimaryColor:      c.PrimaryColor,
		MetaTitle:         c.MetaTitle,
		MetaDescription:   c.MetaDescription,
		HomeNewsCount:     int(c.HomeNewsCount),
		HomeShowProgram:   c.HomeShowProgram,
		ShowWelcomeBanner: c.ShowWelcomeBanner,
	}
}

func userFromRow(u store.User) model.User {
	return model.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}

// mapRows converts a slice of rows with fn.
func mapRows[R, M any](rows []R, fn func(R) M) []M {
	out := make([]M, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}
