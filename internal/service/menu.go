// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/util"
)

// ListMenuItems returns navigation entries by display order.
func (r *Repository) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	return mapRows(rows, menuItemFromRow), nil
}

// GetMenuItem returns a navigation entry by id.
func (r *Repository) GetMenuItem(ctx context.Context, id int64) (model.MenuItem, error) {
	row, err := r.queries.GetMenuItem(ctx, id)
	if err != nil {
		return model.MenuItem{}, notFound(err, "menu item", id)
	}
	return menuItemFromRow(row), nil
}

// CreateMenuItem validates and appends a navigation entry.
func (r *Repository) CreateMenuItem(ctx context.Context, in model.MenuItem) (model.MenuItem, error) {
	in, err := prepareMenuItem(in)
	if err != nil {
		return model.MenuItem{}, err
	}
	order, err := nextOrder(r.queries.MaxMenuOrder(ctx))
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("reading menu order: %w", err)
	}
	row, err := r.queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
		Label:      in.Label,
		Path:       in.Path,
		OrderIndex: order,
	})
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("creating menu item: %w", err)
	}
	return menuItemFromRow(row), nil
}

// UpdateMenuItem validates and overwrites a navigation entry.
func (r *Repository) UpdateMenuItem(ctx context.Context, id int64, in model.MenuItem) (model.MenuItem, error) {
	current, err := r.queries.GetMenuItem(ctx, id)
	if err != nil {
		return model.MenuItem{}, notFound(err, "menu item", id)
	}
	in, err = prepareMenuItem(in)
	if err != nil {
		return model.MenuItem{}, err
	}
	row, err := r.queries.UpdateMenuItem(ctx, store.UpdateMenuItemParams{
		Label:      in.Label,
		Path:       in.Path,
		OrderIndex: current.OrderIndex,
		ID:         id,
	})
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("updating menu item %d: %w", id, err)
	}
	return menuItemFromRow(row), nil
}

// DeleteMenuItem removes a navigation entry.
func (r *Repository) DeleteMenuItem(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteMenuItem(ctx, id)
	return affected(n, err, "menu item", id)
}

// ReorderMenuItems applies a batch of order updates atomically.
func (r *Repository) ReorderMenuItems(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "menu item", updates, (*store.Queries).UpdateMenuItemOrder)
}

// prepareMenuItem accepts a public page name or a safe link as the target.
func prepareMenuItem(in model.MenuItem) (model.MenuItem, error) {
	in.Label = strings.TrimSpace(in.Label)
	in.Path = strings.TrimSpace(in.Path)

	var verr ValidationError
	verr.require("label", in.Label, "Tên menu không được để trống")
	switch {
	case in.Path == "":
		verr.add("path", "Đường dẫn không được để trống")
	case util.IsSafeLink(in.Path):
	case !router.IsPublicPage(router.Page(in.Path)):
		verr.add("path", "Trang đích không hợp lệ")
	}
	return in, verr.err()
}
