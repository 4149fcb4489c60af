package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// ListPostCategories returns post categories by display order.
func (r *Repository) ListPostCategories(ctx context.Context) ([]model.PostCategory, error) {
	rows, err := r.queries.ListPostCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing post categories: %w", err)
	}
	return mapRows(rows, postCategoryFromRow), nil
}

// GetPostCategory returns a post category by id.
func (r *Repository) GetPostCategory(ctx context.Context, id int64) (model.PostCategory, error) {
	row, err := r.queries.GetPostCategory(ctx, id)
	if err != nil {
		return model.PostCategory{}, notFound(err, "post category", id)
	}
	return postCategoryFromRow(row), nil
}

// CreatePostCategory validates and inserts a post category at the end of
// the display order.
func (r *Repository) CreatePostCategory(ctx context.Context, in model.PostCategory) (model.PostCategory, error) {
	slug, err := prepareCategory(ctx, 0, in.Name, in.Slug, r.queries.PostCategorySlugExists)
	if err != nil {
		return model.PostCategory{}, err
	}
	order, err := nextOrder(r.queries.MaxPostCategoryOrder(ctx))
	if err != nil {
		return model.PostCategory{}, fmt.Errorf("reading post category order: %w", err)
	}

	row, err := r.queries.CreatePostCategory(ctx, store.CreatePostCategoryParams{
		Name:       strings.TrimSpace(in.Name),
		Slug:       slug,
		Color:      in.Color,
		OrderIndex: order,
	})
	if err != nil {
		return model.PostCategory{}, fmt.Errorf("creating post category: %w", err)
	}
	return postCategoryFromRow(row), nil
}

// UpdatePostCategory overwrites a post category. Posts filed under the old
// slug follow a slug change in the same transaction.
func (r *Repository) UpdatePostCategory(ctx context.Context, id int64, in model.PostCategory) (model.PostCategory, error) {
	current, err := r.queries.GetPostCategory(ctx, id)
	if err != nil {
		return model.PostCategory{}, notFound(err, "post category", id)
	}
	slug, err := prepareCategory(ctx, id, in.Name, in.Slug, r.queries.PostCategorySlugExists)
	if err != nil {
		return model.PostCategory{}, err
	}

	var updated store.PostCategory
	err = store.InTx(ctx, r.db, func(q *store.Queries) error {
		var err error
		updated, err = q.UpdatePostCategory(ctx, store.UpdatePostCategoryParams{
			Name:       strings.TrimSpace(in.Name),
			Slug:       slug,
			Color:      in.Color,
			OrderIndex: current.OrderIndex,
			ID:         id,
		})
		if err != nil {
			return err
		}
		if slug != current.Slug {
			return q.RenamePostCategory(ctx, slug, current.Slug)
		}
		return nil
	})
	if err != nil {
		return model.PostCategory{}, fmt.Errorf("updating post category %d: %w", id, err)
	}
	return postCategoryFromRow(updated), nil
}

// DeletePostCategory removes a post category. Posts keep their category
// slug and simply stop matching a category.
func (r *Repository) DeletePostCategory(ctx context.Context, id int64) error {
	n, err := r.queries.DeletePostCategory(ctx, id)
	return affected(n, err, "post category", id)
}

// ReorderPostCategories applies a batch of order updates atomically.
func (r *Repository) ReorderPostCategories(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "post category", updates, (*store.Queries).UpdatePostCategoryOrder)
}

// ListDocumentCategories returns document categories by display order.
func (r *Repository) ListDocumentCategories(ctx context.Context) ([]model.DocumentCategory, error) {
	rows, err := r.queries.ListDocumentCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing document categories: %w", err)
	}
	return mapRows(rows, documentCategoryFromRow), nil
}

// GetDocumentCategory returns a document category by id.
func (r *Repository) GetDocumentCategory(ctx context.Context, id int64) (model.DocumentCategory, error) {
	row, err := r.queries.GetDocumentCategory(ctx, id)
	if err != nil {
		return model.DocumentCategory{}, notFound(err, "document category", id)
	}
	return documentCategoryFromRow(row), nil
}

// CreateDocumentCategory validates and inserts a document category.
func (r *Repository) CreateDocumentCategory(ctx context.Context, in model.DocumentCategory) (model.DocumentCategory, error) {
	slug, err := prepareCategory(ctx, 0, in.Name, in.Slug, r.queries.DocumentCategorySlugExists)
	if err != nil {
		return model.DocumentCategory{}, err
	}
	order, err := nextOrder(r.queries.MaxDocumentCategoryOrder(ctx))
	if err != nil {
		return model.DocumentCategory{}, fmt.Errorf("reading document category order: %w", err)
	}

	row, err := r.queries.CreateDocumentCategory(ctx, store.CreateDocumentCategoryParams{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		OrderIndex:  order,
	})
	if err != nil {
		return model.DocumentCategory{}, fmt.Errorf("creating document category: %w", err)
	}
	return documentCategoryFromRow(row), nil
}

// UpdateDocumentCategory overwrites a document category.
func (r *Repository) UpdateDocumentCategory(ctx context.Context, id int64, in model.DocumentCategory) (model.DocumentCategory, error) {
	current, err := r.queries.GetDocumentCategory(ctx, id)
	if err != nil {
		return model.DocumentCategory{}, notFound(err, "document category", id)
	}
	slug, err := prepareCategory(ctx, id, in.Name, in.Slug, r.queries.DocumentCategorySlugExists)
	if err != nil {
		return model.DocumentCategory{}, err
	}

	row, err := r.queries.UpdateDocumentCategory(ctx, store.UpdateDocumentCategoryParams{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		OrderIndex:  current.OrderIndex,
		ID:          id,
	})
	if err != nil {
		return model.DocumentCategory{}, fmt.Errorf("updating document category %d: %w", id, err)
	}
	return documentCategoryFromRow(row), nil
}

// DeleteDocumentCategory removes a document category. It refuses with
// ErrCategoryInUse while any document references the category.
func (r *Repository) DeleteDocumentCategory(ctx context.Context, id int64) error {
	if _, err := r.queries.GetDocumentCategory(ctx, id); err != nil {
		return notFound(err, "document category", id)
	}
	count, err := r.queries.CountDocumentsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("counting documents of category %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("document category %d has %d documents: %w", id, count, ErrCategoryInUse)
	}
	n, err := r.queries.DeleteDocumentCategory(ctx, id)
	return affected(n, err, "document category", id)
}

// ReorderDocumentCategories applies a batch of order updates atomically.
func (r *Repository) ReorderDocumentCategories(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "document category", updates, (*store.Queries).UpdateDocumentCategoryOrder)
}

// prepareCategory validates a category name and returns its slug, generated
// from the name when blank.
func prepareCategory(ctx context.Context, id int64, name, slug string, exists slugExistsFunc) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &ValidationError{Fields: map[string]string{"name": "Tên danh mục không được để trống"}}
	}
	return resolveSlug(ctx, slug, name, id, true, exists)
}
