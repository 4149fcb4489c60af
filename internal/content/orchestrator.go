// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content loads every collection the public site renders from and
// publishes it as one immutable State, plus the lazy loader for full post
// records.
package content

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/scms-go/internal/model"
)

// Source reads the site collections. service.Repository implements it.
type Source interface {
	GetSiteConfig(ctx context.Context) (model.SiteConfig, error)
	ListPostSummaries(ctx context.Context) ([]model.Post, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)
	ListDocumentCategories(ctx context.Context) ([]model.DocumentCategory, error)
	ListGalleryImages(ctx context.Context) ([]model.GalleryImage, error)
	ListGalleryAlbums(ctx context.Context) ([]model.GalleryAlbum, error)
	ListVideos(ctx context.Context) ([]model.Video, error)
	ListDisplayBlocks(ctx context.Context) ([]model.DisplayBlock, error)
	ListMenuItems(ctx context.Context) ([]model.MenuItem, error)
	ListStaff(ctx context.Context) ([]model.StaffMember, error)
	ListIntroductions(ctx context.Context) ([]model.Introduction, error)
	ListPostCategories(ctx context.Context) ([]model.PostCategory, error)
}

// Orchestrator keeps the current content State.
type Orchestrator struct {
	src    Source
	logger *slog.Logger

	state     atomic.Pointer[State]
	refreshMu sync.Mutex
	loading   atomic.Int32

	subMu   sync.Mutex
	subs    map[int]func(*State)
	nextSub int
}

// NewOrchestrator creates an orchestrator holding an empty state with the
// fallback site configuration.
func NewOrchestrator(src Source, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		src:    src,
		logger: logger,
		subs:   make(map[int]func(*State)),
	}
	o.state.Store(emptyState())
	return o
}

// Snapshot returns the last committed state.
func (o *Orchestrator) Snapshot() *State {
	return o.state.Load()
}

// Loading reports whether a refresh started with showLoader is running.
func (o *Orchestrator) Loading() bool {
	return o.loading.Load() > 0
}

// Subscribe registers fn to be called with every committed state.
// The returned function removes the subscription.
func (o *Orchestrator) Subscribe(fn func(*State)) func() {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn

	return func() {
		o.subMu.Lock()
		delete(o.subs, id)
		o.subMu.Unlock()
	}
}

// Refresh reloads every collection concurrently and commits the result.
// A failing collection is replaced by its fallback without affecting the
// others, so Refresh always returns a complete state.
func (o *Orchestrator) Refresh(ctx context.Context, showLoader bool) *State {
	if showLoader {
		o.loading.Add(1)
		defer o.loading.Add(-1)
	}

	o.refreshMu.Lock()
	start := time.Now()
	next := o.load(ctx)
	o.state.Store(next)
	o.refreshMu.Unlock()

	o.logger.Debug("content refreshed",
		"posts", len(next.Posts),
		"blocks", len(next.Blocks),
		"duration", time.Since(start))

	for _, fn := range o.subscribers() {
		fn(next)
	}
	return next
}

func (o *Orchestrator) subscribers() []func(*State) {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	keys := make([]int, 0, len(o.subs))
	for k := range o.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	fns := make([]func(*State), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, o.subs[k])
	}
	return fns
}

func (o *Orchestrator) load(ctx context.Context) *State {
	s := &State{}

	// Each branch writes its own field and never fails.
	var g errgroup.Group
	g.Go(func() error { s.Config = o.loadConfig(ctx); return nil })
	g.Go(func() error { s.Posts = fetch(ctx, o.logger, "posts", o.src.ListPostSummaries); return nil })
	g.Go(func() error { s.Documents = fetch(ctx, o.logger, "documents", o.src.ListDocuments); return nil })
	g.Go(func() error {
		s.DocumentCategories = fetch(ctx, o.logger, "document_categories", o.src.ListDocumentCategories)
		return nil
	})
	g.Go(func() error { s.GalleryImages = fetch(ctx, o.logger, "gallery_images", o.src.ListGalleryImages); return nil })
	g.Go(func() error { s.GalleryAlbums = fetch(ctx, o.logger, "gallery_albums", o.src.ListGalleryAlbums); return nil })
	g.Go(func() error { s.Videos = fetch(ctx, o.logger, "videos", o.src.ListVideos); return nil })
	g.Go(func() error { s.Blocks = fetch(ctx, o.logger, "display_blocks", o.src.ListDisplayBlocks); return nil })
	g.Go(func() error { s.Menu = fetch(ctx, o.logger, "menu_items", o.src.ListMenuItems); return nil })
	g.Go(func() error { s.Staff = fetch(ctx, o.logger, "staff", o.src.ListStaff); return nil })
	g.Go(func() error { s.Introductions = fetch(ctx, o.logger, "introductions", o.src.ListIntroductions); return nil })
	g.Go(func() error {
		s.PostCategories = fetch(ctx, o.logger, "post_categories", o.src.ListPostCategories)
		return nil
	})
	_ = g.Wait()

	s.Blocks = visibleBlocks(s.Blocks)
	s.Introductions = visibleIntroductions(s.Introductions)
	sort.SliceStable(s.Menu, func(i, j int) bool { return s.Menu[i].OrderIndex < s.Menu[j].OrderIndex })
	s.LoadedAt = time.Now()
	return s
}

func (o *Orchestrator) loadConfig(ctx context.Context) model.SiteConfig {
	cfg, err := o.src.GetSiteConfig(ctx)
	if err != nil {
		o.logger.Warn("site configuration unavailable, using defaults", "error", err, "category", model.EventCategoryConfig)
		return model.DefaultSiteConfig()
	}
	if model.PatchLegacyConfig(&cfg) {
		o.logger.Info("replaced legacy site branding", "name", cfg.Name)
	}
	return cfg
}

func fetch[T any](ctx context.Context, logger *slog.Logger, name string, fn func(context.Context) ([]T, error)) []T {
	items, err := fn(ctx)
	if err != nil {
		logger.Warn("content fetch failed, using empty collection", "collection", name, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func visibleBlocks(blocks []model.DisplayBlock) []model.DisplayBlock {
	out := make([]model.DisplayBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.IsVisible {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func visibleIntroductions(intros []model.Introduction) []model.Introduction {
	out := make([]model.Introduction, 0, len(intros))
	for _, in := range intros {
		if in.IsVisible {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}
