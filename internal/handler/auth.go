// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
)

// Login flash messages.
const (
	msgCredentialsRequired = "Vui lòng nhập email và mật khẩu."
	msgInvalidCredentials  = "Email hoặc mật khẩu không đúng."
	msgLoggedOut           = "Bạn đã đăng xuất."
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	base
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(d Deps, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{base: newBase(d), loginProtection: lp}
}

// LoginForm renders the login page.
// Console users who are already signed in go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil && user.CanEdit() {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	data := h.adminData(r, router.PageLogin, "Đăng nhập", nil)
	data.Data = map[string]string{"Email": r.URL.Query().Get("email")}
	h.render(w, r, http.StatusOK, "auth/login", data)
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectLogin) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.Sessions, redirectLogin, msgCredentialsRequired)
		return
	}

	meta := map[string]any{"email": email, "path": middleware.GetRequestPath(r.Context())}

	if h.loginProtection != nil {
		if remaining, locked := h.loginProtection.Locked(email); locked {
			_ = h.Events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", 0, meta)
			flashError(w, r, h.Sessions, redirectLogin, "Tài khoản tạm thời bị khóa. Vui lòng thử lại sau "+formatDuration(remaining)+".")
			return
		}
	}

	user, err := h.Repo.Authenticate(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logAndInternalError(w, "authentication failed", "error", err)
			return
		}
		h.Logger.Debug("login failed", "email", email)
		_ = h.Events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed", 0, meta)
		h.failedAttempt(w, r, email)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.Succeed(email)
	}

	if err := h.Sessions.SignIn(r.Context(), user.ID); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.Logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	_ = h.Events.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged in", user.ID, meta)

	target := redirectAdmin
	if !user.CanEdit() {
		target = RouteRoot
	}
	flashSuccess(w, r, h.Sessions, target, "Xin chào, "+user.Name+"!")
}

// failedAttempt records a failed login and answers with the matching flash.
func (h *AuthHandler) failedAttempt(w http.ResponseWriter, r *http.Request, email string) {
	if h.loginProtection != nil {
		if lockDuration, locked := h.loginProtection.Fail(email); locked {
			_ = h.Events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", 0,
				map[string]any{"email": email, "duration": lockDuration.String()})
			flashError(w, r, h.Sessions, redirectLogin, "Đăng nhập sai quá nhiều lần. Vui lòng thử lại sau "+formatDuration(lockDuration)+".")
			return
		}
		if remaining := h.loginProtection.Remaining(email); remaining > 0 && remaining <= 3 {
			flashError(w, r, h.Sessions, redirectLogin, fmt.Sprintf("%s Còn %d lần thử.", msgInvalidCredentials, remaining))
			return
		}
	}
	flashError(w, r, h.Sessions, redirectLogin, msgInvalidCredentials)
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID > 0 {
		_ = h.Events.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged out", userID, nil)
	}

	if err := h.Sessions.SignOut(r.Context()); err != nil {
		h.Logger.Error("session destroy error", "error", err)
	}

	h.Logger.Info("user logged out", "user_id", userID)
	flashAndRedirect(w, r, h.Sessions, redirectLogin, msgLoggedOut, session.FlashInfo)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d giây", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d phút", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d giờ", int(d.Hours()))
	}
}
