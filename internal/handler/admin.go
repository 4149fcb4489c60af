// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
)

const (
	dashboardDays         = 14
	dashboardRecentEvents = 5
)

// VisitReporter provides the traffic figures of the dashboard.
type VisitReporter interface {
	StatsSource
	Daily(ctx context.Context, n int) ([]model.VisitDay, error)
}

// DashboardStats holds the counters displayed on the dashboard.
type DashboardStats struct {
	TotalPosts     int64
	PublishedPosts int64
	DraftPosts     int64
	Documents      int
	Albums         int
	Videos         int
	Staff          int
	Blocks         int
	Users          map[string]int64
}

// DashboardData holds all dashboard data including stats and recent items.
type DashboardData struct {
	Stats        DashboardStats
	Visits       model.VisitStats
	Daily        []model.VisitDay
	MaxDaily     int64
	RecentPosts  []model.Post
	RecentEvents []service.EventEntry
}

// AdminHandler handles the dashboard and the content refresh.
type AdminHandler struct {
	base
	visits VisitReporter
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(d Deps, visits VisitReporter) *AdminHandler {
	return &AdminHandler{base: newBase(d), visits: visits}
}

// Dashboard renders the admin dashboard with stats and recent activity.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := h.Content.Snapshot()

	stats := DashboardStats{
		Documents: len(state.Documents),
		Albums:    len(state.GalleryAlbums),
		Videos:    len(state.Videos),
		Staff:     len(state.Staff),
		Blocks:    len(state.Blocks),
	}

	if _, total, err := h.Repo.ListPosts(ctx, service.PostFilter{Limit: 1}); err != nil {
		h.Logger.Error("failed to count posts", "error", err)
	} else {
		stats.TotalPosts = total
	}
	if _, published, err := h.Repo.ListPosts(ctx, service.PostFilter{Status: model.PostStatusPublished, Limit: 1}); err != nil {
		h.Logger.Error("failed to count published posts", "error", err)
	} else {
		stats.PublishedPosts = published
		stats.DraftPosts = stats.TotalPosts - published
	}

	data := DashboardData{Stats: stats}

	if recent, _, err := h.Repo.ListPosts(ctx, service.PostFilter{Limit: 5}); err != nil {
		h.Logger.Error("failed to list recent posts", "error", err)
	} else {
		data.RecentPosts = recent
	}

	if h.visits != nil {
		data.Visits = h.visits.Stats(ctx)
		if daily, err := h.visits.Daily(ctx, dashboardDays); err != nil {
			h.Logger.Error("failed to load daily visits", "error", err)
		} else {
			data.Daily = daily
			for _, d := range daily {
				data.MaxDaily = max(data.MaxDaily, d.Visits)
			}
		}
	}

	if user := middleware.GetUser(r); user != nil && user.IsAdmin() {
		if counts, err := h.Repo.CountUsers(ctx); err != nil {
			h.Logger.Error("failed to count users", "error", err)
		} else {
			data.Stats.Users = counts
		}
		if events, _, err := h.Events.ListEvents(ctx, "", dashboardRecentEvents, 0); err != nil {
			h.Logger.Error("failed to list recent events", "error", err)
		} else {
			data.RecentEvents = events
		}
	}

	h.render(w, r, http.StatusOK, "admin/dashboard", h.adminData(r, router.PageAdminDashboard, "Tổng quan", data))
}

// Refresh re-runs the content load with the loading indicator on.
// POST /admin/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	go func() {
		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()
		h.Content.Refresh(ctx, true)
	}()

	_ = h.Events.LogContentEvent(r.Context(), "Content refresh requested", middleware.GetUserID(r), nil)
	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"message": msgRefreshed})
		return
	}
	flashSuccess(w, r, h.Sessions, redirectAdmin, msgRefreshed)
}
