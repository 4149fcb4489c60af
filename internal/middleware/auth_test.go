// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/testutil"
)

type fakeSessions struct {
	userID    int64
	signedOut bool
}

func (s *fakeSessions) UserID(context.Context) int64 { return s.userID }
func (s *fakeSessions) SignOut(context.Context) error {
	s.signedOut = true
	s.userID = 0
	return nil
}

type fakeUsers map[int64]model.User

func (f fakeUsers) GetUser(_ context.Context, id int64) (model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return model.User{}, service.ErrNotFound
}

func captureUser(t *testing.T, sessions Sessions, users UserLoader) *model.User {
	t.Helper()
	var got *model.User
	handler := LoadUser(sessions, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))
	return got
}

func TestLoadUser(t *testing.T) {
	users := fakeUsers{7: {ID: 7, Email: "bbt@truong.edu.vn", Role: model.RoleEditor}}

	t.Run("anonymous", func(t *testing.T) {
		assert.Nil(t, captureUser(t, &fakeSessions{}, users))
	})

	t.Run("signed in", func(t *testing.T) {
		got := captureUser(t, &fakeSessions{userID: 7}, users)
		require.NotNil(t, got)
		assert.Equal(t, "bbt@truong.edu.vn", got.Email)
	})

	t.Run("deleted user signs out", func(t *testing.T) {
		sessions := &fakeSessions{userID: 99}
		assert.Nil(t, captureUser(t, sessions, users))
		assert.True(t, sessions.signedOut)
	})
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req); got != 0 {
		t.Errorf("GetUserID() without user = %d", got)
	}
	req = WithUser(req, model.User{ID: 3})
	if got := GetUserID(req); got != 3 {
		t.Errorf("GetUserID() = %d, want 3", got)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		minRole  string
		wantCode int
	}{
		{"anonymous redirected", nil, model.RoleEditor, http.StatusSeeOther},
		{"editor allowed", &model.User{ID: 1, Role: model.RoleEditor}, model.RoleEditor, http.StatusOK},
		{"admin allowed for editor routes", &model.User{ID: 1, Role: model.RoleAdmin}, model.RoleEditor, http.StatusOK},
		{"editor denied admin routes", &model.User{ID: 1, Role: model.RoleEditor}, model.RoleAdmin, http.StatusForbidden},
		{"guest denied", &model.User{ID: 1, Role: model.RoleGuest}, model.RoleEditor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.minRole, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.user != nil {
				req = WithUser(req, *tt.user)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusSeeOther && rec.Header().Get("Location") != LoginPath {
				t.Errorf("Location = %q", rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireAdmin_LogsDeniedAccess(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	events := service.NewEventService(db)
	editor, err := service.NewRepository(db, 0).CreateUser(t.Context(), service.UserInput{
		Email: "bbt@truong.edu.vn", Name: "Biên tập", Role: model.RoleEditor, Password: "matkhau123",
	})
	require.NoError(t, err)

	handler := RequireAdmin(events)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := WithUser(httptest.NewRequest(http.MethodGet, "/admin/settings", nil), editor)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	entries, total, err := events.ListEvents(t.Context(), "", 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, model.EventCategoryAuth, entries[0].Category)
	assert.Equal(t, model.EventLevelWarning, entries[0].Level)
}

func TestRequestPath(t *testing.T) {
	var got string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?page=news", nil))
	if got != "/" {
		t.Errorf("GetRequestPath() = %q, want /", got)
	}
	if GetRequestPath(context.Background()) != "" {
		t.Error("empty context must yield empty path")
	}
}
