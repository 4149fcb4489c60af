// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/scms-go/internal/blocks"
	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/util"
)

const (
	newsPerPage  = 10
	relatedPosts = 4
)

// StatsSource provides the visit counters of the stats block.
type StatsSource interface {
	Stats(ctx context.Context) model.VisitStats
}

// NewsListData is the data of the news page.
type NewsListData struct {
	Category   *model.PostCategory
	Categories []model.PostCategory
	Posts      []model.Post
	Pagination render.Pagination
}

// NewsDetailData is the data of the news detail page.
type NewsDetailData struct {
	Post     model.Post
	Category *model.PostCategory
	Related  []model.Post
}

// DocumentsData is the data of the documents page.
type DocumentsData struct {
	Active     model.DocumentCategory
	Categories []model.DocumentCategory
	Documents  []model.Document
}

// GalleryData is the data of the gallery page. Album is set when a single
// album is open.
type GalleryData struct {
	Album  *model.GalleryAlbum
	Images []model.GalleryImage
	Albums []AlbumSummary
}

// AlbumSummary is an album with its image count.
type AlbumSummary struct {
	model.GalleryAlbum
	ImageCount int
}

// IntroData is the data of the introduction page.
type IntroData struct {
	Sections []model.Introduction
	Active   string
}

// PublicHandler renders the public site. Every public page is served from
// "/" and addressed by the page and id query parameters.
type PublicHandler struct {
	base
	navigator router.Navigator
	details   *content.DetailLoader
	stats     StatsSource
	auth      *AuthHandler
	console   map[router.Page]http.Handler
	now       func() time.Time
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(d Deps, nav router.Navigator, details *content.DetailLoader, stats StatsSource, auth *AuthHandler) *PublicHandler {
	return &PublicHandler{
		base:      newBase(d),
		navigator: nav,
		details:   details,
		stats:     stats,
		auth:      auth,
		console:   make(map[router.Page]http.Handler),
		now:       time.Now,
	}
}

// HandleConsole registers the handler rendering a console page in place
// when it is addressed as /?page=<name>. The role check matches the page.
func (h *PublicHandler) HandleConsole(page router.Page, fn http.HandlerFunc) {
	if page.IsAdminOnly() {
		h.console[page] = middleware.RequireAdmin(h.Events)(fn)
		return
	}
	h.console[page] = middleware.RequireEditor(h.Events)(fn)
}

// Page resolves the requested location and renders it.
func (h *PublicHandler) Page(w http.ResponseWriter, r *http.Request) {
	loc := router.Parse(r.URL)
	decision := h.navigator.Navigate(r.URL, loc, middleware.GetUser(r) != nil)
	if decision.RedirectURL != "" {
		http.Redirect(w, r, decision.RedirectURL, http.StatusSeeOther)
		return
	}

	loc = decision.Location
	switch {
	case loc.Page == router.PageLogin:
		h.auth.LoginForm(w, r)
		return
	case loc.Page.IsAdmin():
		h.serveConsole(w, r, loc.Page)
		return
	case !router.IsPublicPage(loc.Page):
		loc = router.Location{Page: router.PageHome}
	}

	state := h.Content.Snapshot()
	switch loc.Page {
	case router.PageIntro:
		h.intro(w, r, state, loc)
	case router.PageNews:
		h.news(w, r, state, loc)
	case router.PageNewsDetail:
		h.newsDetail(w, r, state, loc)
	case router.PageDocuments:
		h.documents(w, r, state, loc)
	case router.PageStaff:
		h.simple(w, r, state, loc.Page, "Đội ngũ cán bộ", state.Staff)
	case router.PageGallery:
		h.gallery(w, r, state, loc)
	case router.PageResources:
		h.simple(w, r, state, loc.Page, "Thư viện video", state.Videos)
	case router.PageContact:
		h.simple(w, r, state, loc.Page, "Liên hệ", nil)
	default:
		h.simple(w, r, state, router.PageHome, "", nil)
	}
}

// NotFound renders the public not-found page.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	state := h.Content.Snapshot()
	h.notFound(w, r, state)
}

func (h *PublicHandler) serveConsole(w http.ResponseWriter, r *http.Request, page router.Page) {
	if next, ok := h.console[page]; ok {
		next.ServeHTTP(w, r)
		return
	}
	if route, ok := page.ConsoleRoute(); ok {
		http.Redirect(w, r, route, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// publicData builds the layout data shared by every public page.
func (h *PublicHandler) publicData(r *http.Request, state *content.State, page router.Page, title string) render.TemplateData {
	in := blocks.Input{
		Page:       page,
		Blocks:     state.Blocks,
		Posts:      state.Posts,
		Documents:  state.Documents,
		Staff:      state.Staff,
		Categories: state.PostCategories,
		Config:     state.Config,
		Now:        h.now(),
	}
	if h.stats != nil {
		in.Stats = h.stats.Stats(r.Context())
	}

	return render.TemplateData{
		Title:     title,
		Site:      state.Config,
		Menu:      state.Menu,
		Page:      page,
		User:      middleware.GetUser(r),
		Main:      blocks.Compose(in, model.BlockPositionMain),
		Sidebar:   blocks.Compose(in, model.BlockPositionSidebar),
		Loading:   h.Content.Loading(),
		CSRFToken: middleware.CSRFToken(r),
	}
}

func (h *PublicHandler) simple(w http.ResponseWriter, r *http.Request, state *content.State, page router.Page, title string, data any) {
	td := h.publicData(r, state, page, title)
	td.Data = data
	h.render(w, r, http.StatusOK, "public/"+page.String(), td)
}

func (h *PublicHandler) notFound(w http.ResponseWriter, r *http.Request, state *content.State) {
	td := h.publicData(r, state, router.PageHome, "Không tìm thấy")
	td.Main, td.Sidebar = nil, nil
	h.render(w, r, http.StatusNotFound, "public/not-found", td)
}

func (h *PublicHandler) intro(w http.ResponseWriter, r *http.Request, state *content.State, loc router.Location) {
	data := IntroData{Sections: state.Introductions, Active: loc.ID}
	if data.Active == "" && len(data.Sections) > 0 {
		data.Active = data.Sections[0].Slug
	}
	h.simple(w, r, state, loc.Page, "Giới thiệu", data)
}

func (h *PublicHandler) news(w http.ResponseWriter, r *http.Request, state *content.State, loc router.Location) {
	data := NewsListData{Categories: state.PostCategories}
	title := "Tin tức"
	slug := ""
	if c, ok := state.PostCategory(loc.ID); ok {
		data.Category = &c
		slug = c.Slug
		title = c.Name
	}

	posts := blocks.SortByDate(state.PublishedPosts(slug))
	current := util.ParseIntDefault(r.URL.Query().Get("p"), 1)
	data.Pagination = render.BuildPagination(current, int64(len(posts)), newsPerPage, RouteRoot, r.URL.Query())
	offset := min(data.Pagination.Offset(), len(posts))
	data.Posts = posts[offset:min(offset+newsPerPage, len(posts))]

	h.simple(w, r, state, loc.Page, title, data)
}

func (h *PublicHandler) newsDetail(w http.ResponseWriter, r *http.Request, state *content.State, loc router.Location) {
	id, err := strconv.ParseInt(loc.ID, 10, 64)
	if err != nil {
		h.notFound(w, r, state)
		return
	}
	var post model.Post
	if summary, ok := state.Post(id); ok {
		if !summary.IsPublished() {
			h.notFound(w, r, state)
			return
		}
		post, err = h.details.Load(r.Context(), summary)
	} else {
		post, err = h.details.LoadPublished(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, content.ErrNotPublished) {
			h.Logger.Debug("post not available", "id", id, "error", err)
		} else {
			h.Logger.Warn("failed to load post", "id", id, "error", err)
		}
		h.notFound(w, r, state)
		return
	}

	data := NewsDetailData{Post: post}
	if c, ok := state.PostCategory(post.Category); ok {
		data.Category = &c
	}
	for _, p := range blocks.SortByDate(state.PublishedPosts(post.Category)) {
		if p.ID != post.ID && len(data.Related) < relatedPosts {
			data.Related = append(data.Related, p)
		}
	}

	td := h.publicData(r, state, loc.Page, post.Title)
	td.Description = util.StripHTML(post.Summary)
	td.Data = data
	h.render(w, r, http.StatusOK, "public/news-detail", td)
}

func (h *PublicHandler) documents(w http.ResponseWriter, r *http.Request, state *content.State, loc router.Location) {
	data := DocumentsData{Categories: state.DocumentCategories}
	slug := loc.ID
	if slug == "" {
		slug = model.DefaultDocumentCategorySlug
	}
	if c, ok := state.DocumentCategory(slug); ok {
		data.Active = c
	} else if len(state.DocumentCategories) > 0 {
		data.Active = state.DocumentCategories[0]
	}
	if data.Active.ID != 0 {
		data.Documents = state.DocumentsIn(data.Active.ID)
	}
	h.simple(w, r, state, loc.Page, "Văn bản", data)
}

func (h *PublicHandler) gallery(w http.ResponseWriter, r *http.Request, state *content.State, loc router.Location) {
	var data GalleryData
	title := "Thư viện ảnh"
	if id, err := strconv.ParseInt(loc.ID, 10, 64); err == nil {
		if album, ok := state.Album(id); ok {
			data.Album = &album
			data.Images = state.AlbumImages(id)
			title = album.Title
		}
	}
	if data.Album == nil {
		for _, a := range state.GalleryAlbums {
			data.Albums = append(data.Albums, AlbumSummary{GalleryAlbum: a, ImageCount: len(state.AlbumImages(a.ID))})
		}
	}
	h.simple(w, r, state, loc.Page, title, data)
}
