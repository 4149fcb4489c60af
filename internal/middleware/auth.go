// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and response hardening.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/service"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyRequestPath ContextKey = "request_path"
)

// LoginPath is where unauthenticated console requests are sent.
const LoginPath = "/login"

// Sessions is the part of the session manager the middleware needs.
type Sessions interface {
	UserID(ctx context.Context) int64
	SignOut(ctx context.Context) error
}

// UserLoader loads a console account by id.
type UserLoader interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
}

// LoadUser resolves the signed-in user once per request and stores it in the
// request context. A session pointing at a deleted user is destroyed and the
// request continues anonymously.
func LoadUser(sessions Sessions, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessions.UserID(r.Context())
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				slog.Warn("session user not loaded", "user_id", userID, "error", err)
				_ = sessions.SignOut(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// WithUser returns a copy of r carrying user. Used by tests and internal
// redirects.
func WithUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

// RequestPath stores the request path in the context for error logging.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// roleLevel returns a numeric level for the role hierarchy.
// Guests and unknown roles have no console access.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole requires a signed-in user with at least minRole.
// Roles are hierarchical: ADMIN > EDITOR. Anonymous requests are redirected
// to the login page; insufficient roles get 403 and an auth event.
func RequireRole(minRole string, events *service.EventService) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			if roleLevel(user.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"required_role", minRole,
				)
				if events != nil {
					_ = events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Access denied: insufficient permissions", user.ID, map[string]any{
						"method":        r.Method,
						"path":          r.URL.Path,
						"user_role":     user.Role,
						"required_role": minRole,
					})
				}
				http.Error(w, "Bạn không có quyền truy cập trang này.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEditor allows ADMIN and EDITOR users.
func RequireEditor(events *service.EventService) func(http.Handler) http.Handler {
	return RequireRole(model.RoleEditor, events)
}

// RequireAdmin allows ADMIN users only.
func RequireAdmin(events *service.EventService) func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin, events)
}
