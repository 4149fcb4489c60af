// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/util"
)

// maxSlugAttempts bounds the numeric suffixes tried for a generated slug.
const maxSlugAttempts = 100

// PostFilter selects posts for the admin list.
type PostFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

// ListPostSummaries returns the newest posts without their heavy content
// and attachments fields.
func (r *Repository) ListPostSummaries(ctx context.Context) ([]model.Post, error) {
	rows, err := r.queries.ListPostSummaries(ctx, int64(r.postListLimit))
	if err != nil {
		return nil, fmt.Errorf("listing post summaries: %w", err)
	}
	return mapRows(rows, postFromRow), nil
}

// ListPosts returns a page of full posts and the total matching count.
func (r *Repository) ListPosts(ctx context.Context, f PostFilter) ([]model.Post, int64, error) {
	if f.Limit <= 0 {
		f.Limit = r.postListLimit
	}
	rows, err := r.queries.ListPosts(ctx, store.ListPostsParams{
		Status:   f.Status,
		Category: f.Category,
		Limit:    int64(f.Limit),
		Offset:   int64(f.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	total, err := r.queries.CountPosts(ctx, f.Status, f.Category)
	if err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}
	return mapRows(rows, postFromRow), total, nil
}

// GetPost returns the full post including content and attachments.
func (r *Repository) GetPost(ctx context.Context, id int64) (model.Post, error) {
	row, err := r.queries.GetPost(ctx, id)
	if err != nil {
		return model.Post{}, notFound(err, "post", id)
	}
	return postFromRow(row), nil
}

// CreatePost validates and inserts a new post.
func (r *Repository) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	in, err := r.preparePost(ctx, 0, in)
	if err != nil {
		return model.Post{}, err
	}

	now := time.Now().UTC()
	row, err := r.queries.CreatePost(ctx, store.CreatePostParams{
		Title:        in.Title,
		Slug:         in.Slug,
		Summary:      in.Summary,
		Content:      in.Content,
		Thumbnail:    in.Thumbnail,
		ImageCaption: in.ImageCaption,
		Author:       in.Author,
		Date:         in.Date,
		Category:     in.Category,
		Status:       in.Status,
		IsFeatured:   in.IsFeatured,
		ShowOnHome:   in.ShowOnHome,
		BlockIds:     encodeJSON(in.BlockIDs, "[]"),
		Tags:         encodeJSON(in.Tags, "[]"),
		Attachments:  encodeJSON(in.Attachments, "[]"),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return postFromRow(row), nil
}

// UpdatePost validates and overwrites the post with the given id.
func (r *Repository) UpdatePost(ctx context.Context, id int64, in model.Post) (model.Post, error) {
	if _, err := r.queries.GetPost(ctx, id); err != nil {
		return model.Post{}, notFound(err, "post", id)
	}
	in, err := r.preparePost(ctx, id, in)
	if err != nil {
		return model.Post{}, err
	}

	row, err := r.queries.UpdatePost(ctx, store.UpdatePostParams{
		Title:        in.Title,
		Slug:         in.Slug,
		Summary:      in.Summary,
		Content:      in.Content,
		Thumbnail:    in.Thumbnail,
		ImageCaption: in.ImageCaption,
		Author:       in.Author,
		Date:         in.Date,
		Category:     in.Category,
		Status:       in.Status,
		IsFeatured:   in.IsFeatured,
		ShowOnHome:   in.ShowOnHome,
		BlockIds:     encodeJSON(in.BlockIDs, "[]"),
		Tags:         encodeJSON(in.Tags, "[]"),
		Attachments:  encodeJSON(in.Attachments, "[]"),
		UpdatedAt:    time.Now().UTC(),
		ID:           id,
	})
	if err != nil {
		return model.Post{}, fmt.Errorf("updating post %d: %w", id, err)
	}
	return postFromRow(row), nil
}

// DeletePost removes a post.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	n, err := r.queries.DeletePost(ctx, id)
	return affected(n, err, "post", id)
}

// IncrementPostViews adds one to the view counter of a post.
func (r *Repository) IncrementPostViews(ctx context.Context, id int64) error {
	n, err := r.queries.IncrementPostViews(ctx, id)
	if err != nil {
		return fmt.Errorf("incrementing views of post %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}

// preparePost validates in and fills the derived fields: slug, status, date
// and normalized tags.
func (r *Repository) preparePost(ctx context.Context, id int64, in model.Post) (model.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	var verr ValidationError
	verr.require("title", in.Title, "Tiêu đề không được để trống")
	verr.require("content", in.Content, "Nội dung không được để trống")

	switch in.Status {
	case "":
		in.Status = model.PostStatusDraft
	case model.PostStatusDraft, model.PostStatusPublished:
	default:
		verr.add("status", "Trạng thái không hợp lệ")
	}

	if strings.TrimSpace(in.Date) == "" {
		in.Date = time.Now().Format("2006-01-02")
	} else if _, ok := model.ParseContentDate(in.Date); !ok {
		verr.add("date", "Ngày đăng không hợp lệ")
	}

	if err := verr.err(); err != nil {
		return in, err
	}

	explicit := strings.TrimSpace(in.Slug) != ""
	slug, err := resolveSlug(ctx, in.Slug, in.Title, id, explicit, r.queries.PostSlugExists)
	if err != nil {
		return in, err
	}
	in.Slug = slug
	in.Tags = normalizeTags(in.Tags)
	if in.BlockIDs == nil {
		in.BlockIDs = []int64{}
	}
	if in.Attachments == nil {
		in.Attachments = []model.Attachment{}
	}
	return in, nil
}

type slugExistsFunc func(ctx context.Context, slug string, excludeID int64) (int64, error)

// resolveSlug returns a valid, unused slug. A slug typed by the user must be
// free; a generated one gets a numeric suffix until it is.
func resolveSlug(ctx context.Context, slug, source string, id int64, explicit bool, exists slugExistsFunc) (string, error) {
	base := util.SlugOrGenerate(slug, source)
	if !util.IsValidSlug(base) {
		return "", &ValidationError{Fields: map[string]string{
			"slug": "Đường dẫn chỉ được chứa chữ thường, số và dấu gạch ngang",
		}}
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		n, err := exists(ctx, candidate, id)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if n == 0 {
			return candidate, nil
		}
		if explicit {
			return "", fmt.Errorf("%w: %s", ErrSlugTaken, candidate)
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", fmt.Errorf("%w: %s", ErrSlugTaken, base)
}

// normalizeTags trims tags and drops empty and duplicate entries.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	return normalizeTags(util.SplitList(s))
}
