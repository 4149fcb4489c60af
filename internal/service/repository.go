// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic between the HTTP handlers and
// the store: row to view-model mapping, validation, explicit create and
// update operations, transactional reordering and event logging.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// DefaultPostListLimit caps the post summaries loaded by ListPostSummaries.
const DefaultPostListLimit = 50

// Repository reads and writes every content entity of the site.
type Repository struct {
	db            *sql.DB
	queries       *store.Queries
	postListLimit int
}

// NewRepository creates a Repository. A non-positive postListLimit selects
// DefaultPostListLimit.
func NewRepository(db *sql.DB, postListLimit int) *Repository {
	if postListLimit <= 0 {
		postListLimit = DefaultPostListLimit
	}
	return &Repository{
		db:            db,
		queries:       store.New(db),
		postListLimit: postListLimit,
	}
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps everything else.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("loading %s %d: %w", what, id, err)
}

// affected turns a zero row count into ErrNotFound.
func affected(n int64, err error, what string, id int64) error {
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

type orderSetter func(q *store.Queries, ctx context.Context, orderIndex, id int64) (int64, error)

// reorder applies every update inside one transaction. An unknown id rolls
// the whole batch back.
func (r *Repository) reorder(ctx context.Context, what string, updates []model.OrderUpdate, set orderSetter) error {
	if len(updates) == 0 {
		return nil
	}
	err := store.InTx(ctx, r.db, func(q *store.Queries) error {
		for _, u := range updates {
			n, err := set(q, ctx, int64(u.Order), u.ID)
			if err != nil {
				return fmt.Errorf("updating %s %d: %w", what, u.ID, err)
			}
			if n == 0 {
				return fmt.Errorf("%s %d: %w", what, u.ID, ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reordering %s: %w", what, err)
	}
	return nil
}

// nextOrder returns max+1 for a max-order query.
func nextOrder(maxOrder int64, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
