// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package blocks turns the configured display blocks of a page region into
// render-ready units: it filters blocks by page, resolves their data source,
// orders and truncates the items and shapes them per block type.
package blocks

import (
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// heroSecondaryCount is the number of side stories next to the hero story.
const heroSecondaryCount = 2

// DefaultBadge labels a post whose category is unknown.
const DefaultBadge = "TIN TỨC"

// Input is everything a page region needs to compose its blocks.
type Input struct {
	Page       router.Page
	Blocks     []model.DisplayBlock
	Posts      []model.Post
	Documents  []model.Document
	Staff      []model.StaffMember
	Categories []model.PostCategory
	Config     model.SiteConfig
	Stats      model.VisitStats
	Now        time.Time
}

// Stats is the data of a stats block. Now seeds the client-side clock.
type Stats struct {
	model.VisitStats
	Now time.Time
}

// Rendered is a block with its resolved data.
// Only the fields matching Block.Type are set.
type Rendered struct {
	Block      model.DisplayBlock
	Items      []model.Post
	Primary    *model.Post
	Secondary  []model.Post
	Documents  []model.Document
	Categories []model.PostCategory
	Staff      []model.StaffMember
	Stats      *Stats
	HTML       template.HTML

	categories map[string]model.PostCategory
}

// Badge returns the upper-cased category name of p.
func (r Rendered) Badge(p model.Post) string {
	if c, ok := r.categories[p.Category]; ok && c.Name != "" {
		return strings.ToUpper(c.Name)
	}
	return DefaultBadge
}

// BadgeColor returns the color of p's category, or "" when it has none.
func (r Rendered) BadgeColor(p model.Post) string {
	return r.categories[p.Category].Color
}

// Compose returns the rendered blocks of position in display order.
// Blocks are expected sorted by order index; their order is kept.
func Compose(in Input, position string) []Rendered {
	var (
		published  = publishedPosts(in.Posts)
		categories = make(map[string]model.PostCategory, len(in.Categories))
		out        []Rendered
	)
	for _, c := range in.Categories {
		categories[c.Slug] = c
	}

	for _, b := range in.Blocks {
		if b.Position != position || !Shown(b, in.Page, in.Config) {
			continue
		}
		r, ok := shape(b, in, published)
		if !ok {
			continue
		}
		r.categories = categories
		out = append(out, r)
	}
	return out
}

// Shown reports whether block b appears on page.
func Shown(b model.DisplayBlock, page router.Page, cfg model.SiteConfig) bool {
	if !b.IsVisible {
		return false
	}
	switch b.TargetPage {
	case model.BlockTargetHome:
		if page != router.PageHome {
			return false
		}
	case model.BlockTargetDetail:
		if page != router.PageNewsDetail {
			return false
		}
	}
	if page == router.PageHome && b.Position == model.BlockPositionMain {
		switch b.Type {
		case model.BlockTypeHero:
			return cfg.ShowWelcomeBanner
		case model.BlockTypeHighlight, model.BlockTypeList:
			return cfg.HomeShowProgram
		}
	}
	return true
}

func shape(b model.DisplayBlock, in Input, published []model.Post) (Rendered, bool) {
	r := Rendered{Block: b}

	switch b.Type {
	case model.BlockTypeHTML:
		if hc, ok := b.HTML(); ok {
			r.HTML = template.HTML(util.SanitizeHTML(hc.Markup))
		}
		return r, true

	case model.BlockTypeStats:
		now := in.Now
		if now.IsZero() {
			now = time.Now()
		}
		r.Stats = &Stats{VisitStats: in.Stats, Now: now}
		return r, true

	case model.BlockTypeDocs:
		r.Documents = truncate(in.Documents, b.ItemCount())
		return r, true

	case model.BlockTypeCategoryList:
		r.Categories = in.Categories
		return r, len(r.Categories) > 0

	case model.BlockTypeStaffList:
		r.Staff = truncate(in.Staff, b.ItemCount())
		return r, len(r.Staff) > 0
	}

	items := truncate(SortByDate(Resolve(published, b.Source())), limit(b, in))
	if len(items) == 0 {
		return r, false
	}

	if b.Type == model.BlockTypeHero {
		r.Primary = &items[0]
		r.Secondary = truncate(items[1:], heroSecondaryCount)
		return r, true
	}
	r.Items = items
	return r, true
}

// limit returns the number of items a feed block shows. The site-wide home
// news count overrides main-column grid blocks on the home page; sidebar
// blocks always use their own count.
func limit(b model.DisplayBlock, in Input) int {
	if b.Type == model.BlockTypeGrid && b.Position == model.BlockPositionMain &&
		in.Page == router.PageHome && in.Config.HomeNewsCount > 0 {
		return in.Config.HomeNewsCount
	}
	return b.ItemCount()
}

// Resolve selects the posts a block source refers to: featured posts,
// posts of one category, or every post for "all" and "".
func Resolve(posts []model.Post, source string) []model.Post {
	switch source {
	case "", model.BlockSourceAll:
		return posts
	case model.BlockSourceFeatured:
		return filter(posts, func(p model.Post) bool { return p.IsFeatured })
	default:
		return filter(posts, func(p model.Post) bool { return p.Category == source })
	}
}

// SortByDate returns a copy of posts ordered newest first. Posts with an
// unparseable date follow the dated ones in their original order.
func SortByDate(posts []model.Post) []model.Post {
	type dated struct {
		post model.Post
		at   time.Time
		ok   bool
	}
	ds := make([]dated, len(posts))
	for i, p := range posts {
		at, ok := model.ParseContentDate(p.Date)
		ds[i] = dated{post: p, at: at, ok: ok}
	}
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].ok != ds[j].ok {
			return ds[i].ok
		}
		if !ds[i].ok {
			return false
		}
		return ds[i].at.After(ds[j].at)
	})

	out := make([]model.Post, len(ds))
	for i, d := range ds {
		out[i] = d.post
	}
	return out
}

func publishedPosts(posts []model.Post) []model.Post {
	return filter(posts, model.Post.IsPublished)
}

func filter(posts []model.Post, keep func(model.Post) bool) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func truncate[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
