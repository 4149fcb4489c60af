// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the public site, the login
// flow and the admin console.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
)

// refreshTimeout bounds the content reload that follows a console write.
const refreshTimeout = 30 * time.Second

// Deps holds the collaborators shared by every handler.
type Deps struct {
	Repo     *service.Repository
	Events   *service.EventService
	Renderer *render.Renderer
	Sessions *session.Manager
	Content  *content.Orchestrator
	Logger   *slog.Logger
}

type base struct {
	Deps
}

func newBase(d Deps) base {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return base{Deps: d}
}

// adminData builds the template data of a console page.
func (b *base) adminData(r *http.Request, page router.Page, title string, data any) render.TemplateData {
	return render.TemplateData{
		Title:     title,
		Site:      b.Content.Snapshot().Config,
		Page:      page,
		User:      middleware.GetUser(r),
		Loading:   b.Content.Loading(),
		Data:      data,
		CSRFToken: middleware.CSRFToken(r),
	}
}

// render writes a page, answering 500 when the template fails.
func (b *base) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := b.Renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// renderForm re-renders a console form after a failed write with the
// submitted values and the per-field errors.
func (b *base) renderForm(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrSlugTaken), errors.Is(err, service.ErrLastAdmin):
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	default:
		b.Logger.Error("console write failed", "template", name, "error", err)
		status = http.StatusInternalServerError
	}
	data.Errors = fieldErrors(err)
	data.Flash = errorMessage(err)
	data.FlashType = session.FlashError
	b.render(w, r, status, name, data)
}

// changed records a content event and reloads the public content so the
// site shows the change immediately.
func (b *base) changed(r *http.Request, category, message string, metadata map[string]any) {
	userID := middleware.GetUserID(r)
	ctx := context.WithoutCancel(r.Context())
	if b.Events != nil {
		_ = b.Events.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
	}
	b.refresh(ctx)
}

// refresh reloads the content snapshot. It outlives the request so that a
// closed connection cannot commit a half-empty snapshot.
func (b *base) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	defer cancel()
	b.Content.Refresh(ctx, false)
}

// remove deletes the entity named by the {id} parameter.
func (b *base) remove(w http.ResponseWriter, r *http.Request, what, redirect string, fn func(context.Context, int64) error) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, b.Sessions, redirect, "Không tìm thấy "+what+".")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		if !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrCategoryInUse) && !errors.Is(err, service.ErrLastAdmin) {
			b.Logger.Error("delete failed", "entity", what, "id", id, "error", err)
		}
		flashError(w, r, b.Sessions, redirect, errorMessage(err))
		return
	}
	b.changed(r, model.EventCategoryContent, "Deleted "+what, map[string]any{"id": id})
	flashSuccess(w, r, b.Sessions, redirect, msgDeleted)
}

// reorder applies a batch of order updates. JSON requests get a JSON
// answer, form posts a flash and a redirect.
func (b *base) reorder(w http.ResponseWriter, r *http.Request, what, redirect string, fn func(context.Context, []model.OrderUpdate) error) {
	updates, err := parseOrderUpdates(w, r)
	if err != nil {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, msgInvalidForm)
		} else {
			flashError(w, r, b.Sessions, redirect, msgInvalidForm)
		}
		return
	}

	if err := fn(r.Context(), updates); err != nil {
		b.Logger.Warn("reorder failed", "entity", what, "error", err)
		if wantsJSON(r) {
			status := http.StatusInternalServerError
			if errors.Is(err, service.ErrNotFound) {
				status = http.StatusNotFound
			}
			writeJSONError(w, status, errorMessage(err))
		} else {
			flashError(w, r, b.Sessions, redirect, errorMessage(err))
		}
		return
	}

	b.changed(r, model.EventCategoryContent, "Reordered "+what, map[string]any{"count": len(updates)})
	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"updated": len(updates)})
		return
	}
	flashSuccess(w, r, b.Sessions, redirect, msgOrderSaved)
}

// parseOrderUpdates reads order updates from a JSON array body or from
// form fields named order[<id>].
func parseOrderUpdates(w http.ResponseWriter, r *http.Request) ([]model.OrderUpdate, error) {
	var updates []model.OrderUpdate
	if wantsJSON(r) {
		if err := decodeJSON(w, r, &updates); err != nil {
			return nil, fmt.Errorf("decoding order updates: %w", err)
		}
		return updates, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parsing form: %w", err)
	}
	for key, values := range r.PostForm {
		idStr, ok := strings.CutPrefix(key, "order[")
		if !ok || !strings.HasSuffix(idStr, "]") || len(values) == 0 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(idStr, "]"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", idStr)
		}
		order, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid order for %d", id)
		}
		updates = append(updates, model.OrderUpdate{ID: id, Order: order})
	}
	return updates, nil
}
