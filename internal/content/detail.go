// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/model"
)

const (
	postKeyPrefix = "post:"

	// viewIncrementTimeout bounds the detached view counter update.
	viewIncrementTimeout = 5 * time.Second

	// fetchTimeout bounds a shared fetch, which outlives the request that
	// started it.
	fetchTimeout = 10 * time.Second
)

// ErrNotPublished is returned by LoadPublished for drafts.
var ErrNotPublished = errors.New("post is not published")

// DetailFetcher reads full post records. service.Repository implements it.
type DetailFetcher interface {
	GetPost(ctx context.Context, id int64) (model.Post, error)
	IncrementPostViews(ctx context.Context, id int64) error
}

// DetailLoader loads the heavy fields of a post on first open and keeps
// them in the cache.
type DetailLoader struct {
	fetcher DetailFetcher
	cache   *cache.TypedCache[model.Post]
	group   singleflight.Group
	logger  *slog.Logger

	pending sync.WaitGroup
}

// NewDetailLoader creates a loader storing records in c. Entries live for
// c's default TTL or until Invalidate.
func NewDetailLoader(fetcher DetailFetcher, c cache.Cache, logger *slog.Logger) *DetailLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailLoader{
		fetcher: fetcher,
		cache:   cache.NewTypedCache[model.Post](c, 0),
		logger:  logger,
	}
}

// PostKey returns the cache key of post id.
func PostKey(id int64) string {
	return postKeyPrefix + strconv.FormatInt(id, 10)
}

// Load returns the full record for summary. A summary that already carries
// its body is returned as is. Concurrent loads of the same post share one
// fetch. Every successful load counts one view.
func (l *DetailLoader) Load(ctx context.Context, summary model.Post) (model.Post, error) {
	post, err := l.load(ctx, summary)
	if err != nil {
		return model.Post{}, err
	}
	l.countView(post.ID)
	return post, nil
}

// LoadPublished reads post id through the cache for posts missing from the
// snapshot, such as those beyond the summary limit. Drafts return
// ErrNotPublished and count no view.
func (l *DetailLoader) LoadPublished(ctx context.Context, id int64) (model.Post, error) {
	post, err := l.load(ctx, model.Post{ID: id})
	if err != nil {
		return model.Post{}, err
	}
	if !post.IsPublished() {
		return model.Post{}, ErrNotPublished
	}
	l.countView(post.ID)
	return post, nil
}

func (l *DetailLoader) load(ctx context.Context, summary model.Post) (model.Post, error) {
	if summary.HasBody() {
		return summary, nil
	}

	key := PostKey(summary.ID)
	if post, ok := l.cache.Get(ctx, key); ok {
		return post, nil
	}

	// Waiters share the fetch, so it runs detached from the first caller.
	ch := l.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		post, err := l.fetcher.GetPost(fetchCtx, summary.ID)
		if err != nil {
			return model.Post{}, err
		}
		if err := l.cache.Set(fetchCtx, key, post); err != nil {
			l.logger.Warn("failed to cache post", "post_id", post.ID, "error", err, "category", model.EventCategoryCache)
		}
		return post, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return model.Post{}, res.Err
		}
		return res.Val.(model.Post), nil
	case <-ctx.Done():
		return model.Post{}, ctx.Err()
	}
}

// countView increments the view counter on a detached context. Failures
// are only logged.
func (l *DetailLoader) countView(id int64) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
		defer cancel()
		if err := l.fetcher.IncrementPostViews(ctx, id); err != nil {
			l.logger.Warn("failed to increment post views", "post_id", id, "error", err)
		}
	}()
}

// Invalidate drops every cached post record.
func (l *DetailLoader) Invalidate(ctx context.Context) {
	if err := l.cache.DeleteByPrefix(ctx, postKeyPrefix); err != nil {
		l.logger.Warn("failed to invalidate post cache", "error", err, "category", model.EventCategoryCache)
	}
}

// Forget drops the cached record of post id.
func (l *DetailLoader) Forget(ctx context.Context, id int64) {
	if err := l.cache.Delete(ctx, PostKey(id)); err != nil {
		l.logger.Warn("failed to drop cached post", "post_id", id, "error", err, "category", model.EventCategoryCache)
	}
}

// Wait blocks until pending view increments have finished.
func (l *DetailLoader) Wait() {
	l.pending.Wait()
}
