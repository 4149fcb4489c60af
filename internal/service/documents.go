package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// ListDocuments returns every document, newest first.
func (r *Repository) ListDocuments(ctx context.Context) ([]model.Document, error) {
	rows, err := r.queries.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return mapRows(rows, documentFromRow), nil
}

// GetDocument returns a document by id.
func (r *Repository) GetDocument(ctx context.Context, id int64) (model.Document, error) {
	row, err := r.queries.GetDocument(ctx, id)
	if err != nil {
		return model.Document{}, notFound(err, "document", id)
	}
	return documentFromRow(row), nil
}

// CreateDocument validates and inserts a document.
func (r *Repository) CreateDocument(ctx context.Context, in model.Document) (model.Document, error) {
	in, err := r.prepareDocument(ctx, in)
	if err != nil {
		return model.Document{}, err
	}
	row, err := r.queries.CreateDocument(ctx, store.CreateDocumentParams{
		Number:      in.Number,
		Title:       in.Title,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
		DownloadUrl: in.DownloadURL,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return model.Document{}, fmt.Errorf("creating document: %w", err)
	}
	return documentFromRow(row), nil
}

// UpdateDocument validates and overwrites a document.
func (r *Repository) UpdateDocument(ctx context.Context, id int64, in model.Document) (model.Document, error) {
	if _, err := r.queries.GetDocument(ctx, id); err != nil {
		return model.Document{}, notFound(err, "document", id)
	}
	in, err := r.prepareDocument(ctx, in)
	if err != nil {
		return model.Document{}, err
	}
	row, err := r.queries.UpdateDocument(ctx, store.UpdateDocumentParams{
		Number:      in.Number,
		Title:       in.Title,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
		DownloadUrl: in.DownloadURL,
		ID:          id,
	})
	if err != nil {
		return model.Document{}, fmt.Errorf("updating document %d: %w", id, err)
	}
	return documentFromRow(row), nil
}

// DeleteDocument removes a document.
func (r *Repository) DeleteDocument(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteDocument(ctx, id)
	return affected(n, err, "document", id)
}

func (r *Repository) prepareDocument(ctx context.Context, in model.Document) (model.Document, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Number = strings.TrimSpace(in.Number)
	in.DownloadURL = strings.TrimSpace(in.DownloadURL)

	var verr ValidationError
	verr.require("title", in.Title, "Tiêu đề văn bản không được để trống")
	verr.require("number", in.Number, "Số hiệu văn bản không được để trống")
	verr.require("download_url", in.DownloadURL, "Đường dẫn tải về không được để trống")
	if in.CategoryID <= 0 {
		verr.add("category_id", "Vui lòng chọn danh mục văn bản")
	} else if _, err := r.queries.GetDocumentCategory(ctx, in.CategoryID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return in, fmt.Errorf("loading document category %d: %w", in.CategoryID, err)
		}
		verr.add("category_id", "Danh mục văn bản không tồn tại")
	}
	if strings.TrimSpace(in.Date) == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	return in, verr.err()
}
