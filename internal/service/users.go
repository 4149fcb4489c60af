// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/util"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or
// a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserInput carries the editable fields of a console account. Password is
// optional on update.
type UserInput struct {
	Email    string
	Name     string
	Role     string
	Password string
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// ListUsers returns every console account.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return mapRows(rows, userFromRow), nil
}

// GetUser returns a console account by id.
func (r *Repository) GetUser(ctx context.Context, id int64) (model.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return model.User{}, notFound(err, "user", id)
	}
	return userFromRow(row), nil
}

// CreateUser validates and inserts a console account.
func (r *Repository) CreateUser(ctx context.Context, in UserInput) (model.User, error) {
	in, err := prepareUser(in, true)
	if err != nil {
		return model.User{}, err
	}
	if err := r.checkEmailFree(ctx, in.Email, 0); err != nil {
		return model.User{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	row, err := r.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	return userFromRow(row), nil
}

// UpdateUser overwrites a console account. The password is changed only
// when in.Password is set. Demoting the last admin is refused.
func (r *Repository) UpdateUser(ctx context.Context, id int64, in UserInput) (model.User, error) {
	current, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return model.User{}, notFound(err, "user", id)
	}
	in, err = prepareUser(in, false)
	if err != nil {
		return model.User{}, err
	}
	if err := r.checkEmailFree(ctx, in.Email, id); err != nil {
		return model.User{}, err
	}
	if current.Role == model.RoleAdmin && in.Role != model.RoleAdmin {
		if err := r.checkNotLastAdmin(ctx); err != nil {
			return model.User{}, err
		}
	}

	var hash string
	if in.Password != "" {
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return model.User{}, fmt.Errorf("hashing password: %w", err)
		}
	}

	now := time.Now().UTC()
	var updated store.User
	err = store.InTx(ctx, r.db, func(q *store.Queries) error {
		var err error
		updated, err = q.UpdateUser(ctx, store.UpdateUserParams{
			Email:     in.Email,
			Name:      in.Name,
			Role:      in.Role,
			UpdatedAt: now,
			ID:        id,
		})
		if err != nil || hash == "" {
			return err
		}
		updated.PasswordHash = hash
		return q.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
			PasswordHash: hash,
			UpdatedAt:    now,
			ID:           id,
		})
	})
	if err != nil {
		return model.User{}, fmt.Errorf("updating user %d: %w", id, err)
	}
	return userFromRow(updated), nil
}

// DeleteUser removes a console account. Deleting the last admin is refused.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	current, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return notFound(err, "user", id)
	}
	if current.Role == model.RoleAdmin {
		if err := r.checkNotLastAdmin(ctx); err != nil {
			return err
		}
	}
	if err := r.queries.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return nil
}

// Authenticate checks an email and password pair and records the login.
// A hash produced with older parameters is upgraded in place.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("loading user: %w", err)
		}
		// Keep the response time close to that of a known email.
		_, _ = auth.CheckPassword(password, getDummyHash())
		return model.User{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, row.PasswordHash)
	if err != nil {
		return model.User{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := r.queries.UpdateUserLastLogin(ctx, now, row.ID); err != nil {
		slog.Warn("failed to record last login", "user_id", row.ID, "error", err)
	} else {
		row.LastLoginAt = util.NullTimeFromValue(now)
	}

	if auth.NeedsRehash(row.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := r.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    now,
				ID:           row.ID,
			}); err != nil {
				slog.Warn("failed to upgrade password hash", "user_id", row.ID, "error", err)
			}
		}
	}
	return userFromRow(row), nil
}

// CountUsers returns the number of accounts per role.
func (r *Repository) CountUsers(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(model.ValidRoles))
	for _, role := range model.ValidRoles {
		n, err := r.queries.CountUsersByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("counting %s users: %w", role, err)
		}
		counts[role] = n
	}
	return counts, nil
}

func (r *Repository) checkEmailFree(ctx context.Context, email string, id int64) error {
	existing, err := r.queries.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("checking email: %w", err)
	case existing.ID != id:
		return &ValidationError{Fields: map[string]string{"email": "Email đã được sử dụng"}}
	}
	return nil
}

func (r *Repository) checkNotLastAdmin(ctx context.Context) error {
	admins, err := r.queries.CountUsersByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func prepareUser(in UserInput, requirePassword bool) (UserInput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	var verr ValidationError
	if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.add("email", "Email không hợp lệ")
	}
	verr.require("name", in.Name, "Tên không được để trống")
	if !model.IsValidRole(in.Role) {
		verr.add("role", "Vai trò không hợp lệ")
	}
	if in.Password != "" || requirePassword {
		if err := auth.ValidatePassword(in.Password); err != nil {
			verr.add("password", fmt.Sprintf("Mật khẩu phải có ít nhất %d ký tự", auth.MinPasswordLength))
		}
	}
	return in, verr.err()
}

func getDummyHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("dummy-password-for-timing")
	})
	return dummyHash
}
