// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/scheduler"
)

// JobRunner lists and triggers maintenance jobs.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Trigger(ctx context.Context, name string) error
}

// SchedulerHandler handles the maintenance job screen.
type SchedulerHandler struct {
	base
	jobs JobRunner
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(d Deps, jobs JobRunner) *SchedulerHandler {
	return &SchedulerHandler{base: newBase(d), jobs: jobs}
}

// List handles GET /admin/scheduler.
func (h *SchedulerHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin/scheduler", h.adminData(r, router.PageAdminEvents, "Tác vụ định kỳ", h.jobs.Jobs()))
}

// Trigger handles POST /admin/scheduler/{name}/run - runs a job now.
func (h *SchedulerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.jobs.Trigger(r.Context(), name); err != nil {
		h.Logger.Error("failed to trigger job", "error", err, "name", name)
		flashError(w, r, h.Sessions, redirectAdminScheduler, "Không thể chạy tác vụ: "+err.Error())
		return
	}

	_ = h.Events.LogEvent(r.Context(), model.EventLevelInfo, model.EventCategorySystem,
		"Job manually triggered: "+name, middleware.GetUserID(r), map[string]any{"name": name})
	h.Logger.Info("scheduler job triggered", "name", name, "triggered_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.Sessions, redirectAdminScheduler, "Đã chạy tác vụ "+name+".")
}
