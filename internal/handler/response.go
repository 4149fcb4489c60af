// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sessions *session.Manager, url, message, messageType string) {
	sessions.SetFlash(r.Context(), message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, sessions *session.Manager, url, message string) {
	flashAndRedirect(w, r, sessions, url, message, session.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, sessions *session.Manager, url, message string) {
	flashAndRedirect(w, r, sessions, url, message, session.FlashSuccess)
}

// parseFormOrRedirect parses the request form and redirects with an error
// message on failure. Returns true if parsing succeeded.
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, sessions *session.Manager, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, sessions, redirectURL, msgInvalidForm)
		return false
	}
	return true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, msgInternalError, http.StatusInternalServerError, logMsg, args...)
}

// parseIDParam returns the {id} URL parameter, or 0 when it is not a
// positive integer.
func parseIDParam(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// errorMessage returns the flash text for a failed write.
func errorMessage(err error) string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return msgCheckForm
	case errors.Is(err, service.ErrSlugTaken):
		return "Đường dẫn (slug) đã được sử dụng."
	case errors.Is(err, service.ErrCategoryInUse):
		return "Danh mục vẫn còn văn bản nên không thể xóa."
	case errors.Is(err, service.ErrLastAdmin):
		return "Không thể xóa hoặc hạ quyền quản trị viên cuối cùng."
	case errors.Is(err, service.ErrNotFound):
		return "Không tìm thấy dữ liệu."
	}
	return "Lưu thất bại: " + err.Error()
}

// fieldErrors returns the per-field messages of a validation error.
func fieldErrors(err error) map[string]string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	if errors.Is(err, service.ErrSlugTaken) {
		return map[string]string{"slug": "Đường dẫn đã được sử dụng"}
	}
	return nil
}

// requireEntityWithRedirect fetches an entity by ID. On error it sets a
// flash message and redirects. Returns false when a response was written.
func requireEntityWithRedirect[T any](
	w http.ResponseWriter,
	r *http.Request,
	sessions *session.Manager,
	redirectURL string,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	if id == 0 {
		flashError(w, r, sessions, redirectURL, "Không tìm thấy "+entityName+".")
		return zero, false
	}
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, sessions, redirectURL, "Không tìm thấy "+entityName+".")
		} else {
			slog.Error("failed to get "+entityName, "error", err, "id", id)
			flashError(w, r, sessions, redirectURL, msgLoadFailed)
		}
		return zero, false
	}
	return entity, true
}

// requireEntityWithJSONError fetches an entity by ID. On error it writes a
// JSON error response. Returns false when a response was written.
func requireEntityWithJSONError[T any](
	w http.ResponseWriter,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Không tìm thấy "+entityName)
		} else {
			slog.Error("failed to get "+entityName, "error", err, "id", id)
			writeJSONError(w, http.StatusInternalServerError, msgInternalError)
		}
		return zero, false
	}
	return entity, true
}
