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

// RoleLabels names the roles in the console.
var RoleLabels = map[string]string{
	model.RoleAdmin:  "Quản trị viên",
	model.RoleEditor: "Biên tập viên",
	model.RoleGuest:  "Khách",
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users         []model.User
	CurrentUserID int64
	Counts        map[string]int64
}

// RoleLabel returns the console name of role.
func (UsersListData) RoleLabel(role string) string {
	return roleLabel(role)
}

// UserFormData holds data for the user form template. The password is
// never echoed back.
type UserFormData struct {
	ID     int64
	Input  service.UserInput
	Roles  []string
	IsEdit bool
}

// RoleLabel returns the console name of role.
func (UserFormData) RoleLabel(role string) string {
	return roleLabel(role)
}

func roleLabel(role string) string {
	if label, ok := RoleLabels[role]; ok {
		return label
	}
	return role
}

// UsersHandler handles user management routes.
type UsersHandler struct {
	base
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(d Deps) *UsersHandler {
	return &UsersHandler{base: newBase(d)}
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.ListUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}
	counts, err := h.Repo.CountUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	data := UsersListData{Users: users, CurrentUserID: middleware.GetUserID(r), Counts: counts}
	h.render(w, r, http.StatusOK, "admin/users", h.adminData(r, router.PageAdminUsers, "Tài khoản", data))
}

// NewForm handles GET /admin/users/new.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, UserFormData{Input: service.UserInput{Role: model.RoleEditor}}, nil)
}

// Create handles POST /admin/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminUsers) {
		return
	}
	in := userInputFromForm(r)
	user, err := h.Repo.CreateUser(r.Context(), in)
	if err != nil {
		h.renderUserForm(w, r, UserFormData{Input: in}, err)
		return
	}

	h.Logger.Info("user created", "user_id", user.ID, "created_by", middleware.GetUserID(r))
	h.logUserEvent(r, "User created", user)
	flashSuccess(w, r, h.Sessions, redirectAdminUsers, msgSaved)
}

// EditForm handles GET /admin/users/{id}.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminUsers, "tài khoản", parseIDParam(r, "id"),
		func(id int64) (model.User, error) { return h.Repo.GetUser(r.Context(), id) })
	if !ok {
		return
	}
	h.renderUserForm(w, r, UserFormData{
		ID:     user.ID,
		Input:  service.UserInput{Email: user.Email, Name: user.Name, Role: user.Role},
		IsEdit: true,
	}, nil)
}

// Update handles POST /admin/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminUsers) {
		return
	}
	in := userInputFromForm(r)
	user, err := h.Repo.UpdateUser(r.Context(), id, in)
	if err != nil {
		h.renderUserForm(w, r, UserFormData{ID: id, Input: in, IsEdit: true}, err)
		return
	}

	h.Logger.Info("user updated", "user_id", id, "updated_by", middleware.GetUserID(r))
	h.logUserEvent(r, "User updated", user)
	flashSuccess(w, r, h.Sessions, redirectAdminUsers, msgSaved)
}

// Delete handles POST /admin/users/{id}/delete.
// An admin cannot delete their own account, nor the last admin.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == middleware.GetUserID(r) {
		flashError(w, r, h.Sessions, redirectAdminUsers, "Bạn không thể xóa tài khoản của chính mình.")
		return
	}

	user, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminUsers, "tài khoản", id,
		func(id int64) (model.User, error) { return h.Repo.GetUser(r.Context(), id) })
	if !ok {
		return
	}
	if err := h.Repo.DeleteUser(r.Context(), id); err != nil {
		flashError(w, r, h.Sessions, redirectAdminUsers, errorMessage(err))
		return
	}

	h.Logger.Info("user deleted", "user_id", id, "email", user.Email, "deleted_by", middleware.GetUserID(r))
	h.logUserEvent(r, "User deleted", user)
	flashSuccess(w, r, h.Sessions, redirectAdminUsers, msgDeleted)
}

func (h *UsersHandler) logUserEvent(r *http.Request, message string, user model.User) {
	_ = h.Events.LogUserEvent(context.WithoutCancel(r.Context()), message, middleware.GetUserID(r),
		map[string]any{"user_id": user.ID, "email": user.Email, "role": user.Role})
}

func (h *UsersHandler) renderUserForm(w http.ResponseWriter, r *http.Request, data UserFormData, err error) {
	data.Input.Password = ""
	data.Roles = model.ValidRoles
	title := "Thêm tài khoản"
	if data.IsEdit {
		title = "Sửa tài khoản"
	}
	td := h.adminData(r, router.PageAdminUsers, title, data)
	if err != nil {
		h.renderForm(w, r, "admin/user-form", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/user-form", td)
}

func userInputFromForm(r *http.Request) service.UserInput {
	return service.UserInput{
		Email:    r.FormValue("email"),
		Name:     r.FormValue("name"),
		Role:     r.FormValue("role"),
		Password: r.FormValue("password"),
	}
}
