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

// ListVideos returns videos by display order.
func (r *Repository) ListVideos(ctx context.Context) ([]model.Video, error) {
	rows, err := r.queries.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return mapRows(rows, videoFromRow), nil
}

// GetVideo returns a video by id.
func (r *Repository) GetVideo(ctx context.Context, id int64) (model.Video, error) {
	row, err := r.queries.GetVideo(ctx, id)
	if err != nil {
		return model.Video{}, notFound(err, "video", id)
	}
	return videoFromRow(row), nil
}

// CreateVideo validates and appends a video.
func (r *Repository) CreateVideo(ctx context.Context, in model.Video) (model.Video, error) {
	in, err := prepareVideo(in)
	if err != nil {
		return model.Video{}, err
	}
	order, err := nextOrder(r.queries.MaxVideoOrder(ctx))
	if err != nil {
		return model.Video{}, fmt.Errorf("reading video order: %w", err)
	}
	row, err := r.queries.CreateVideo(ctx, store.CreateVideoParams{
		Title:       in.Title,
		YoutubeID:   in.YoutubeID,
		Description: in.Description,
		OrderIndex:  order,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return model.Video{}, fmt.Errorf("creating video: %w", err)
	}
	return videoFromRow(row), nil
}

// UpdateVideo validates and overwrites a video, keeping its position.
func (r *Repository) UpdateVideo(ctx context.Context, id int64, in model.Video) (model.Video, error) {
	current, err := r.queries.GetVideo(ctx, id)
	if err != nil {
		return model.Video{}, notFound(err, "video", id)
	}
	in, err = prepareVideo(in)
	if err != nil {
		return model.Video{}, err
	}
	row, err := r.queries.UpdateVideo(ctx, store.UpdateVideoParams{
		Title:       in.Title,
		YoutubeID:   in.YoutubeID,
		Description: in.Description,
		OrderIndex:  current.OrderIndex,
		ID:          id,
	})
	if err != nil {
		return model.Video{}, fmt.Errorf("updating video %d: %w", id, err)
	}
	return videoFromRow(row), nil
}

// DeleteVideo removes a video.
func (r *Repository) DeleteVideo(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteVideo(ctx, id)
	return affected(n, err, "video", id)
}

// ReorderVideos applies a batch of order updates atomically.
func (r *Repository) ReorderVideos(ctx context.Context, updates []model.OrderUpdate) error {
	return r.reorder(ctx, "video", updates, (*store.Queries).UpdateVideoOrder)
}

func prepareVideo(in model.Video) (model.Video, error) {
	in.Title = strings.TrimSpace(in.Title)

	var verr ValidationError
	verr.require("title", in.Title, "Tiêu đề video không được để trống")
	if id, ok := util.YouTubeID(in.YoutubeID); ok {
		in.YoutubeID = id
	} else {
		verr.add("youtube_id", "Mã hoặc đường dẫn YouTube không hợp lệ")
	}
	return in, verr.err()
}
