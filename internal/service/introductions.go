package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// ListIntroductions returns every introduction section, visible or not, by
// display order.
func (r *Repository) ListIntroductions(ctx context.Context) ([]model.Introduction, error) {
	rows, err := r.queries.ListIntroductions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing introductions: %w", err)
	}
	return mapRows(rows, introductionFromRow), nil
}

// GetIntroduction returns an introduction section by id.
func (r *Repository) GetIntroduction(ctx context.Context, id int64) (model.Introduction, error) {
	row, err := r.queries.GetIntroduction(ctx, id)
	if err != nil {
		return model.Introduction{}, notFound(err, "introduction", id)
	}
	return introductionFromRow(row), nil
}

// CreateIntroduction validates and appends an introduction section.
func (r *Repository) CreateIntroduction(ctx context.Context, in model.Introduction) (model.Introduction, error) {
	in, err := r.prepareIntroduction(ctx, 0, in)
	if err != nil {
		return model.Introduction{}, err
	}
	order, err := nextOrder(r.queries.MaxIntroductionOrder(ctx))
	if err != nil {
		return model.Introduction{}, fmt.Errorf("reading introduction order: %w", err)
	}
	row, err := r.queries.CreateIntroduction(ctx, store.CreateIntroductionParams{
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		ImageUrl:   in.ImageURL,
		OrderIndex: order,
		IsVisible:  in.IsVisible,
	})
	if err != nil {
		return model.Introduction{}, fmt.Errorf("creating introduction: %w", err)
	}
	return introductionFromRow(row), nil
}

// UpdateIntroduction validates and overwrites an introduction section.
func (r *Repository) UpdateIntroduction(ctx context.Context, id int64, in model.Introduction) (model.Introduction, error) {
	current, err := r.queries.GetIntroduction(ctx, id)
	if err != nil {
		return model.Introduction{}, notFound(err, "introduction", id)
	}
	in, err = r.prepareIntroduction(ctx, id, in)
	if err != nil {
		return model.Introduction{}, err
	}
	row, err := r.queries.UpdateIntroduction(ctx, store.UpdateIntroductionParams{
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		ImageUrl:   in.ImageURL,
		OrderIndex: current.OrderIndex,
		IsVisible:  in.IsVisible,
		ID:         id,
	})
	if err != nil {
		return model.Introduction{}, fmt.Errorf("updating introduction %d: %w", id, err)
	}
	return introductionFromRow(row), nil
}

// DeleteIntroduction removes an introduction section.
func (r *Repository) DeleteIntroduction(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteIntroduction(ctx, id)
	return affected(n, err, "introduction", id)
}

// ReorderIntroductions applies a batch of order updates atomically.
func (r *Repository) ReorderIntroductions(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "introduction", updates, (*store.Queries).UpdateIntroductionOrder)
}

func (r *Repository) prepareIntroduction(ctx context.Context, id int64, in model.Introduction) (model.Introduction, error) {
	in.Title = strings.TrimSpace(in.Title)

	var verr ValidationError
	verr.require("title", in.Title, "Tiêu đề không được để trống")
	verr.require("content", in.Content, "Nội dung không được để trống")
	if err := verr.err(); err != nil {
		return in, err
	}

	explicit := strings.TrimSpace(in.Slug) != ""
	slug, err := resolveSlug(ctx, in.Slug, in.Title, id, explicit, r.queries.IntroductionSlugExists)
	if err != nil {
		return in, err
	}
	in.Slug = slug
	return in, nil
}
