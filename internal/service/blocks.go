// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// Directions for MoveBlock.
const (
	MoveUp   = -1
	MoveDown = 1
)

// ListDisplayBlocks returns every block, visible or not, grouped by
// position and ordered within it.
func (r *Repository) ListDisplayBlocks(ctx context.Context) ([]model.DisplayBlock, error) {
	rows, err := r.queries.ListDisplayBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing display blocks: %w", err)
	}
	return mapRows(rows, displayBlockFromRow), nil
}

// GetDisplayBlock returns a block by id.
func (r *Repository) GetDisplayBlock(ctx context.Context, id int64) (model.DisplayBlock, error) {
	row, err := r.queries.GetDisplayBlock(ctx, id)
	if err != nil {
		return model.DisplayBlock{}, notFound(err, "display block", id)
	}
	return displayBlockFromRow(row), nil
}

// CreateDisplayBlock validates a block and appends it to the end of its
// position.
func (r *Repository) CreateDisplayBlock(ctx context.Context, in model.DisplayBlock) (model.DisplayBlock, error) {
	in, err := prepareBlock(in)
	if err != nil {
		return model.DisplayBlock{}, err
	}
	order, err := nextOrder(r.queries.MaxDisplayBlockOrder(ctx, in.Position))
	if err != nil {
		return model.DisplayBlock{}, fmt.Errorf("reading block order: %w", err)
	}

	htmlContent, source, itemCount := blockColumns(in.Content)
	row, err := r.queries.CreateDisplayBlock(ctx, store.CreateDisplayBlockParams{
		Name:        in.Name,
		Position:    in.Position,
		Type:        in.Type,
		OrderIndex:  order,
		ItemCount:   itemCount,
		IsVisible:   in.IsVisible,
		TargetPage:  in.TargetPage,
		HtmlContent: htmlContent,
		Source:      source,
	})
	if err != nil {
		return model.DisplayBlock{}, fmt.Errorf("creating display block: %w", err)
	}
	return displayBlockFromRow(row), nil
}

// UpdateDisplayBlock validates and overwrites a block. Moving a block to
// another position appends it there.
func (r *Repository) UpdateDisplayBlock(ctx context.Context, id int64, in model.DisplayBlock) (model.DisplayBlock, error) {
	current, err := r.queries.GetDisplayBlock(ctx, id)
	if err != nil {
		return model.DisplayBlock{}, notFound(err, "display block", id)
	}
	in, err = prepareBlock(in)
	if err != nil {
		return model.DisplayBlock{}, err
	}

	order := current.OrderIndex
	if in.Position != current.Position {
		order, err = nextOrder(r.queries.MaxDisplayBlockOrder(ctx, in.Position))
		if err != nil {
			return model.DisplayBlock{}, fmt.Errorf("reading block order: %w", err)
		}
	}

	htmlContent, source, itemCount := blockColumns(in.Content)
	row, err := r.queries.UpdateDisplayBlock(ctx, store.UpdateDisplayBlockParams{
		Name:        in.Name,
		Position:    in.Position,
		Type:        in.Type,
		OrderIndex:  order,
		ItemCount:   itemCount,
		IsVisible:   in.IsVisible,
		TargetPage:  in.TargetPage,
		HtmlContent: htmlContent,
		Source:      source,
		ID:          id,
	})
	if err != nil {
		return model.DisplayBlock{}, fmt.Errorf("updating display block %d: %w", id, err)
	}
	return displayBlockFromRow(row), nil
}

// DeleteDisplayBlock removes a block.
func (r *Repository) DeleteDisplayBlock(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteDisplayBlock(ctx, id)
	return affected(n, err, "display block", id)
}

// ReorderDisplayBlocks applies a batch of order updates atomically.
func (r *Repository) ReorderDisplayBlocks(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "display block", updates, (*store.Queries).UpdateDisplayBlockOrder)
}

// MoveBlock swaps a block with its neighbour in the same position and
// renumbers that position 1..n in one transaction. Moving past either end
// leaves the order unchanged.
func (r *Repository) MoveBlock(ctx context.Context, id int64, direction int) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("%w: move direction %d", ErrValidation, direction)
	}

	err := store.InTx(ctx, r.db, func(q *store.Queries) error {
		block, err := q.GetDisplayBlock(ctx, id)
		if err != nil {
			return notFound(err, "display block", id)
		}
		siblings, err := q.ListDisplayBlocksByPosition(ctx, block.Position)
		if err != nil {
			return err
		}

		idx := -1
		for i, b := range siblings {
			if b.ID == id {
				idx = i
				break
			}
		}
		target := idx + direction
		if idx < 0 || target < 0 || target >= len(siblings) {
			return nil
		}
		siblings[idx], siblings[target] = siblings[target], siblings[idx]

		for i, b := range siblings {
			if _, err := q.UpdateDisplayBlockOrder(ctx, int64(i+1), b.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("moving display block %d: %w", id, err)
	}
	return nil
}

func prepareBlock(in model.DisplayBlock) (model.DisplayBlock, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.TargetPage == "" {
		in.TargetPage = model.BlockTargetAll
	}
	if in.Content == nil {
		in.Content = model.NewBlockContent(in.Type, "", "", 0)
	}

	var verr ValidationError
	verr.require("name", in.Name, "Tên khối không được để trống")
	if fc, ok := in.Feed(); ok && fc.ItemCount < 0 {
		verr.add("item_count", "Số lượng hiển thị không được âm")
	}
	if err := in.Validate(); err != nil {
		verr.add("type", err.Error())
	}
	return in, verr.err()
}
