// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// VideosHandler handles the video library.
type VideosHandler struct {
	listScreen[model.Video]
}

// NewVideosHandler creates a new VideosHandler.
func NewVideosHandler(d Deps) *VideosHandler {
	b := newBase(d)
	return &VideosHandler{listScreen[model.Video]{
		base:      &b,
		page:      router.PageAdminVideos,
		title:     "Thư viện video",
		template:  "admin/videos",
		redirect:  redirectAdminVideos,
		what:      "video",
		event:     "videos",
		listFn:    b.Repo.ListVideos,
		getFn:     b.Repo.GetVideo,
		createFn:  b.Repo.CreateVideo,
		updateFn:  b.Repo.UpdateVideo,
		deleteFn:  b.Repo.DeleteVideo,
		reorderFn: b.Repo.ReorderVideos,
		fromForm:  videoFromForm,
	}}
}

// videoFromForm accepts a bare YouTube id or any YouTube URL.
func videoFromForm(r *http.Request) model.Video {
	return model.Video{
		ID:          util.ParseInt64(r.FormValue("id")),
		Title:       r.FormValue("title"),
		YoutubeID:   strings.TrimSpace(r.FormValue("youtube_id")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}
